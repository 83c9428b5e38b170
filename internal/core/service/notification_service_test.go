package service

import (
	"strconv"
	"testing"
	"time"

	"github.com/taskhive/task-tracker/internal/core/domain"
)

func TestWindow_Upcoming(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	todos := []domain.Todo{
		{ID: "in-3h", ScheduledAt: now.Add(3 * time.Hour)},
		{ID: "in-5h", ScheduledAt: now.Add(5 * time.Hour)},
		{ID: "at-horizon", ScheduledAt: now.Add(4 * time.Hour)},
		{ID: "past", ScheduledAt: now.Add(-time.Minute)},
		{ID: "now", ScheduledAt: now},
		{ID: "done-in-1h", ScheduledAt: now.Add(time.Hour), Completed: true},
	}

	got := Window(todos, now)

	want := []string{"now", "in-3h", "at-horizon"}
	if len(got.Upcoming) != len(want) {
		t.Fatalf("expected %d upcoming, got %d", len(want), len(got.Upcoming))
	}
	for i, id := range want {
		if got.Upcoming[i].ID != id {
			t.Fatalf("upcoming[%d] = %s, want %s (earliest first)", i, got.Upcoming[i].ID, id)
		}
	}
}

func TestWindow_CompletedNeverUpcoming(t *testing.T) {
	now := time.Now()
	todos := []domain.Todo{
		{ID: "done", ScheduledAt: now.Add(time.Hour), Completed: true, UpdatedAt: now},
	}

	got := Window(todos, now)
	if len(got.Upcoming) != 0 {
		t.Fatalf("completed todo must never appear in upcoming")
	}
	if len(got.Completed) != 1 {
		t.Fatalf("expected 1 completed, got %d", len(got.Completed))
	}
}

func TestWindow_RecentlyCompletedCapAndOrder(t *testing.T) {
	now := time.Now()

	var todos []domain.Todo
	for i := 0; i < 8; i++ {
		todos = append(todos, domain.Todo{
			ID:        "c" + strconv.Itoa(i),
			Completed: true,
			UpdatedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}

	got := Window(todos, now)
	if len(got.Completed) != 5 {
		t.Fatalf("expected 5 completed entries, got %d", len(got.Completed))
	}
	for i := 0; i < 5; i++ {
		if got.Completed[i].ID != "c"+strconv.Itoa(i) {
			t.Fatalf("completed[%d] = %s, want most-recent-first order", i, got.Completed[i].ID)
		}
	}
}

func TestWindow_EmptyInput(t *testing.T) {
	got := Window(nil, time.Now())
	if got.Upcoming == nil || got.Completed == nil {
		t.Fatalf("empty input must yield empty, non-nil lists")
	}
	if len(got.Upcoming) != 0 || len(got.Completed) != 0 {
		t.Fatalf("expected empty lists")
	}
}
