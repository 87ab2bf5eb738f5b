package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add", TypeAdd},
		{"add Organic chemistry", TypeAdd},
		{"rename 2 Linear algebra", TypeRename},
		{"goal 0 01:30:00", TypeGoal},
		{"start 1", TypeStart},
		{"/reset #1", TypeReset},
		{"DONE 3", TypeDone},
		{"delete 0", TypeDelete},
		{"exam 2026-06-15 09:00:00", TypeExam},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("add  Organic   chemistry ")
	if err != nil || cmd.Add.Name != "Organic chemistry" {
		t.Fatalf("unexpected add: %#v err=%v", cmd.Add, err)
	}
	cmd, err = Parse("rename 4")
	if err != nil || cmd.Rename.ID != 4 || cmd.Rename.Text != "" {
		t.Fatalf("rename to empty should be allowed: %#v err=%v", cmd.Rename, err)
	}
	cmd, err = Parse("goal 2")
	if err != nil || cmd.Goal.ID != 2 || cmd.Goal.Goal != "" {
		t.Fatalf("goal without value should clear: %#v err=%v", cmd.Goal, err)
	}
	cmd, err = Parse("/reset #7")
	if err != nil || cmd.Task.ID != 7 {
		t.Fatalf("unexpected reset: %#v err=%v", cmd.Task, err)
	}
	cmd, err = Parse("exam 2026-06-15 09:00")
	if err != nil || cmd.Exam.Date != "2026-06-15" || cmd.Exam.Time != "09:00" {
		t.Fatalf("unexpected exam: %#v err=%v", cmd.Exam, err)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"  /  ", ErrCodeEmptyInput},
		{"/unknown do x", ErrCodeUnknownCommand},
		{"start", ErrCodeInvalidArgument},
		{"start one", ErrCodeInvalidArgument},
		{"delete -1", ErrCodeInvalidArgument},
		{"done 1 2", ErrCodeInvalidArgument},
		{"rename", ErrCodeInvalidArgument},
		{"goal x 01:00:00", ErrCodeInvalidArgument},
		{"goal 1 01:00:00 extra", ErrCodeInvalidArgument},
		{"exam 2026-06-15", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/done 3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Done: func(a TaskArgs) (Result, error) {
			called = true
			if a.ID != 3 {
				t.Fatalf("unexpected id: %d", a.ID)
			}
			return Result{Message: "ok"}, nil
		},
		Delete: func(TaskArgs) (Result, error) {
			t.Fatal("delete handler should not run")
			return Result{}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"add", "start 1", "exam 2026-06-15 09:00:00"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		_, err = Execute(cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%q: expected missing handler error, got %v", in, err)
		}
	}
}

func TestNamesCoverParser(t *testing.T) {
	for _, name := range Names() {
		_, err := Parse(string(name))
		var ce *CommandError
		if errors.As(err, &ce) && ce.Code == ErrCodeUnknownCommand {
			t.Fatalf("listed command %q is not parsed", name)
		}
	}
}
