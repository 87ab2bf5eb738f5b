package storage

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/buzzer/internal/model"
)

func TestTasksRoundTripThroughStore(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	tasks := model.Tasks{}.Add().Add().StartOrStop(1).Rename(0, "Organic chemistry")
	tasks, err := tasks.SetGoalTime(0, "01:30:00")
	if err != nil {
		t.Fatalf("set goal: %v", err)
	}
	tasks = tasks.Tick(1).Tick(1).ToggleChecked(0)

	if err := SaveTasks(ctx, repo, tasks); err != nil {
		t.Fatalf("save tasks: %v", err)
	}
	got, err := LoadTasks(ctx, repo)
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if !reflect.DeepEqual(got, tasks) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, tasks)
	}
}

func TestEncodeTasksUsesStoreFieldNames(t *testing.T) {
	raw, err := EncodeTasks(model.Tasks{{ID: 2, Text: "Task 3", Time: 61, IsRunning: true, GoalTime: "00:02:00"}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"id":2,"text":"Task 3","time":61,"isRunning":true,"checked":false,"goalTime":"00:02:00"}]`
	if raw != want {
		t.Fatalf("unexpected encoding:\n got %s\nwant %s", raw, want)
	}
	empty, err := EncodeTasks(nil)
	if err != nil || empty != "[]" {
		t.Fatalf("nil collection should encode as [] got %q err=%v", empty, err)
	}
}

func TestLoadTasksTreatsAbsentAndMalformedAsEmpty(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	got, err := LoadTasks(ctx, repo)
	if err != nil || len(got) != 0 {
		t.Fatalf("absent key: got %#v err=%v", got, err)
	}

	for _, raw := range []string{
		"not json",
		`{"id":1}`,
		`[{"id":"one","text":"x","time":0}]`,
		`[{"id":1,"text":"x","time":-5}]`,
		`[{"text":"missing id","time":0}]`,
		`null`,
	} {
		if err := repo.Set(ctx, KeyTasks, raw); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, err := LoadTasks(ctx, repo)
		if err != nil {
			t.Fatalf("malformed %q should not error: %v", raw, err)
		}
		if len(got) != 0 {
			t.Fatalf("malformed %q should load empty, got %#v", raw, got)
		}
	}
}

func TestLoadTasksKeepsUnvalidatedGoalStrings(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	if err := repo.Set(ctx, KeyTasks, `[{"id":0,"text":"Task 1","time":10,"goalTime":"xx:05:00"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := LoadTasks(ctx, repo)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got.TotalGoalTime() != 300 {
		t.Fatalf("expected lenient goal total 300, got %#v", got)
	}
}

func TestExamDateTimeRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, ok, err := LoadExamDateTime(ctx, repo); ok || err != nil {
		t.Fatalf("expected unset target, ok=%v err=%v", ok, err)
	}

	target := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	if err := SaveExamDateTime(ctx, repo, target); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := repo.Get(ctx, KeyExamDateTime)
	if err != nil {
		t.Fatalf("get raw: %v", err)
	}
	if raw != "2026-06-15T09:00:00.000Z" {
		t.Fatalf("unexpected stored format: %q", raw)
	}
	got, ok, err := LoadExamDateTime(ctx, repo)
	if err != nil || !ok || !got.Equal(target) {
		t.Fatalf("unexpected load: %v ok=%v err=%v", got, ok, err)
	}

	if err := ClearExamDateTime(ctx, repo); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := ClearExamDateTime(ctx, repo); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if _, ok, _ := LoadExamDateTime(ctx, repo); ok {
		t.Fatal("expected target cleared")
	}
}

func TestLoadExamDateTimeIgnoresGarbage(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	if err := repo.Set(ctx, KeyExamDateTime, "next tuesday"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, err := LoadExamDateTime(ctx, repo); ok || err != nil {
		t.Fatalf("garbage should be unset, ok=%v err=%v", ok, err)
	}
}
