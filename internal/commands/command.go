package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeRename Type = "rename"
	TypeGoal   Type = "goal"
	TypeStart  Type = "start"
	TypeReset  Type = "reset"
	TypeDone   Type = "done"
	TypeDelete Type = "delete"
	TypeExam   Type = "exam"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs.Name is empty when the default "Task N" name should be used.
type AddArgs struct {
	Name string
}

type RenameArgs struct {
	ID   int
	Text string
}

type GoalArgs struct {
	ID   int
	Goal string
}

// TaskArgs targets a single task for start, reset, done and delete.
type TaskArgs struct {
	ID int
}

type ExamArgs struct {
	Date string
	Time string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Rename *RenameArgs
	Goal   *GoalArgs
	Task   *TaskArgs
	Exam   *ExamArgs
}

// Names lists the palette verbs in display order.
func Names() []Type {
	return []Type{TypeAdd, TypeRename, TypeGoal, TypeStart, TypeReset, TypeDone, TypeDelete, TypeExam}
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return Command{Type: TypeAdd, Raw: input, Add: &AddArgs{Name: strings.Join(args, " ")}}, nil
	case TypeRename:
		return parseRename(input, args)
	case TypeGoal:
		return parseGoal(input, args)
	case TypeStart, TypeReset, TypeDone, TypeDelete:
		return parseTask(input, Type(head), args)
	case TypeExam:
		return parseExam(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseRename(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rename requires a task id"}
	}
	id, err := parseID(TypeRename, args[0])
	if err != nil {
		return Command{}, err
	}
	// An empty name is allowed.
	return Command{Type: TypeRename, Raw: raw, Rename: &RenameArgs{ID: id, Text: strings.Join(args[1:], " ")}}, nil
}

func parseGoal(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires a task id"}
	}
	if len(args) > 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal takes a task id and one HH:MM:SS value"}
	}
	id, err := parseID(TypeGoal, args[0])
	if err != nil {
		return Command{}, err
	}
	goal := ""
	if len(args) == 2 {
		goal = args[1]
	}
	return Command{Type: TypeGoal, Raw: raw, Goal: &GoalArgs{ID: id, Goal: goal}}, nil
}

func parseTask(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires exactly one task id", typ)}
	}
	id, err := parseID(typ, args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Task: &TaskArgs{ID: id}}, nil
}

func parseExam(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "exam requires a date and a time"}
	}
	return Command{Type: TypeExam, Raw: raw, Exam: &ExamArgs{Date: args[0], Time: args[1]}}, nil
}

func parseID(typ Type, raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
	if err != nil || id < 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s: invalid task id %q", typ, raw)}
	}
	return id, nil
}
