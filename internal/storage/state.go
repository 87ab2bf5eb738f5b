package storage

import (
	"bytes"
	_ "embed"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/sandeepkv93/buzzer/internal/logger"
	"github.com/sandeepkv93/buzzer/internal/model"
)

// Keys of the persisted study state.
const (
	KeyTasks        = "tasks"
	KeyExamDateTime = "examDateTime"
)

// ISO-8601 in UTC with millisecond precision.
const examTimeLayout = "2006-01-02T15:04:05.000Z07:00"

//go:embed tasks.schema.json
var tasksSchemaJSON []byte

var (
	tasksSchema     *jsonschema.Schema
	tasksSchemaOnce sync.Once
	tasksSchemaErr  error
)

func compileTasksSchema() (*jsonschema.Schema, error) {
	tasksSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(tasksSchemaJSON))
		if err != nil {
			tasksSchemaErr = fmt.Errorf("unmarshal tasks schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("tasks.schema.json", doc); err != nil {
			tasksSchemaErr = fmt.Errorf("add tasks schema resource: %w", err)
			return
		}
		tasksSchema, tasksSchemaErr = compiler.Compile("tasks.schema.json")
	})
	return tasksSchema, tasksSchemaErr
}

// DecodeTasks validates and decodes a persisted tasks document.
func DecodeTasks(raw string) (model.Tasks, error) {
	schema, err := compileTasksSchema()
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("tasks validation failed: %w", err)
	}
	var tasks model.Tasks
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

func EncodeTasks(tasks model.Tasks) (string, error) {
	if tasks == nil {
		tasks = model.Tasks{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(data), nil
}

// LoadTasks returns the stored collection. An absent, malformed or invalid
// document yields an empty collection; only store failures are returned.
func LoadTasks(ctx context.Context, repo Repository) (model.Tasks, error) {
	raw, err := repo.Get(ctx, KeyTasks)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Tasks{}, nil
		}
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	tasks, err := DecodeTasks(raw)
	if err != nil {
		logger.Warn("Ignoring stored tasks", logger.F("error", err))
		return model.Tasks{}, nil
	}
	return tasks, nil
}

// SaveTasks overwrites the stored collection with tasks.
func SaveTasks(ctx context.Context, repo Repository, tasks model.Tasks) error {
	raw, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := repo.Set(ctx, KeyTasks, raw); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// LoadExamDateTime reports the confirmed countdown target, if any.
func LoadExamDateTime(ctx context.Context, repo Repository) (time.Time, bool, error) {
	raw, err := repo.Get(ctx, KeyExamDateTime)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("load exam date: %w", err)
	}
	target, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		logger.Warn("Ignoring stored exam date", logger.F("value", raw), logger.F("error", err))
		return time.Time{}, false, nil
	}
	return target.Local(), true, nil
}

func SaveExamDateTime(ctx context.Context, repo Repository, target time.Time) error {
	if err := repo.Set(ctx, KeyExamDateTime, FormatExamDateTime(target)); err != nil {
		return fmt.Errorf("save exam date: %w", err)
	}
	return nil
}

// ClearExamDateTime forgets the target; clearing an unset target is fine.
func ClearExamDateTime(ctx context.Context, repo Repository) error {
	if err := repo.Delete(ctx, KeyExamDateTime); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("clear exam date: %w", err)
	}
	return nil
}

func FormatExamDateTime(target time.Time) string {
	return target.UTC().Format(examTimeLayout)
}
