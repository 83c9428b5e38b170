package service

import (
	"context"
	"sort"
	"time"

	"github.com/taskhive/task-tracker/internal/core/domain"
	"github.com/taskhive/task-tracker/internal/core/ports"
)

const (
	// upcomingHorizon bounds how far ahead a todo counts as "due soon".
	upcomingHorizon = 4 * time.Hour
	// recentLimit caps the recently-completed list.
	recentLimit = 5
)

// Notifications is the derived notification view for one user.
type Notifications struct {
	Upcoming  []domain.Todo `json:"upcoming"`
	Completed []domain.Todo `json:"completed"`
}

// NotificationService derives the notification window from the caller's
// owned todos.
type NotificationService struct {
	todos ports.TodoRepository
}

func NewNotificationService(todos ports.TodoRepository) *NotificationService {
	return &NotificationService{todos: todos}
}

// ForUser fetches the caller's todos and derives the window at the current
// time.
func (s *NotificationService) ForUser(ctx context.Context, userID string) (Notifications, error) {
	todos, err := s.todos.ListByOwner(ctx, userID)
	if err != nil {
		return Notifications{}, err
	}
	return Window(todos, time.Now()), nil
}

// Window derives the notification view from a task set at a given instant.
// Upcoming holds incomplete todos scheduled within [now, now+4h], earliest
// first. Completed holds the five most recently finished todos, most recent
// first. Pure: no side effects, empty input yields empty lists.
func Window(todos []domain.Todo, now time.Time) Notifications {
	horizon := now.Add(upcomingHorizon)

	upcoming := make([]domain.Todo, 0)
	completed := make([]domain.Todo, 0)
	for _, t := range todos {
		switch {
		case t.Completed:
			completed = append(completed, t)
		case !t.ScheduledAt.Before(now) && !t.ScheduledAt.After(horizon):
			upcoming = append(upcoming, t)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].ScheduledAt.Before(upcoming[j].ScheduledAt)
	})
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].UpdatedAt.After(completed[j].UpdatedAt)
	})
	if len(completed) > recentLimit {
		completed = completed[:recentLimit]
	}

	return Notifications{Upcoming: upcoming, Completed: completed}
}
