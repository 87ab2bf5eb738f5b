package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Rename func(RenameArgs) (Result, error)
	Goal   func(GoalArgs) (Result, error)
	Start  func(TaskArgs) (Result, error)
	Reset  func(TaskArgs) (Result, error)
	Done   func(TaskArgs) (Result, error)
	Delete func(TaskArgs) (Result, error)
	Exam   func(ExamArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeRename:
		if handlers.Rename == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Rename(*cmd.Rename)
	case TypeGoal:
		if handlers.Goal == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Goal(*cmd.Goal)
	case TypeStart, TypeReset, TypeDone, TypeDelete:
		fn := taskHandler(cmd.Type, handlers)
		if fn == nil {
			return Result{}, missing(cmd.Type)
		}
		return fn(*cmd.Task)
	case TypeExam:
		if handlers.Exam == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Exam(*cmd.Exam)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func taskHandler(typ Type, handlers Handlers) func(TaskArgs) (Result, error) {
	switch typ {
	case TypeStart:
		return handlers.Start
	case TypeReset:
		return handlers.Reset
	case TypeDone:
		return handlers.Done
	case TypeDelete:
		return handlers.Delete
	}
	return nil
}

func missing(typ Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", typ)}
}
