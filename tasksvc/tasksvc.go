package tasksvc

import (
	"context"
	"errors"
	"time"
)

// Task is a todo item. UserID is set once at creation and never changes.
type Task struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	UserID      uint64    `json:"user_id" gorm:"not null;index:idx_tasks_user_created,priority:1"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"size:2000"`
	IsCompleted bool      `json:"is_completed" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"index:idx_tasks_user_created,priority:2"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPatch carries the fields of a partial update. Nil means "leave as is".
type TaskPatch struct {
	Title       *string
	Description *string
}

// TaskRepository is owner-scoped: every query filters by the owning user ID,
// and a task owned by someone else is indistinguishable from an absent one.
type TaskRepository interface {
	Create(ctx context.Context, userID uint64, title, description string) (Task, error)
	FindAll(ctx context.Context, userID uint64) ([]Task, error)
	Find(ctx context.Context, userID, taskID uint64) (Task, error)
	Update(ctx context.Context, userID, taskID uint64, patch TaskPatch) (Task, error)
	Delete(ctx context.Context, userID, taskID uint64) error
	SetCompleted(ctx context.Context, userID, taskID uint64, isCompleted bool) (Task, error)
}

var ErrTaskNotFound = errors.New("task not found")
