package taskservice

import (
	"context"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/log"
	"github.com/ichigozero/todokit/backend/authsvc"
	"github.com/ichigozero/todokit/backend/tasksvc"
)

// Service exposes the task operations. Every method authorizes the caller
// against the declared owner first, and scopes all store access by the
// token-derived identity, never by the path-supplied owner ID.
type Service interface {
	CreateTask(ctx context.Context, identity authsvc.Identity, ownerID uint64, title, description string) (tasksvc.Task, error)
	Tasks(ctx context.Context, identity authsvc.Identity, ownerID uint64) ([]tasksvc.Task, error)
	Task(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64) (tasksvc.Task, error)
	UpdateTask(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64, patch tasksvc.TaskPatch) (tasksvc.Task, error)
	DeleteTask(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64) error
	CompleteTask(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64, isCompleted bool) (tasksvc.Task, error)
}

func New(t tasksvc.TaskRepository, logger log.Logger, requestCount metrics.Counter, requestLatency metrics.Histogram) Service {
	var svc Service
	{
		svc = NewBasicService(t)
		svc = LoggingMiddleware(logger)(svc)
		svc = InstrumentingMiddleware(requestCount, requestLatency)(svc)
	}
	return svc
}

type basicService struct {
	tasks tasksvc.TaskRepository
}

func NewBasicService(t tasksvc.TaskRepository) Service {
	return basicService{tasks: t}
}

func (s basicService) CreateTask(ctx context.Context, identity authsvc.Identity, ownerID uint64, title, description string) (tasksvc.Task, error) {
	if err := authsvc.Authorize(identity.UserID, ownerID); err != nil {
		return tasksvc.Task{}, err
	}
	if err := validateTitle(title); err != nil {
		return tasksvc.Task{}, err
	}
	if err := validateDescription(description); err != nil {
		return tasksvc.Task{}, err
	}

	return s.tasks.Create(ctx, identity.UserID, title, description)
}

func (s basicService) Tasks(ctx context.Context, identity authsvc.Identity, ownerID uint64) ([]tasksvc.Task, error) {
	if err := authsvc.Authorize(identity.UserID, ownerID); err != nil {
		return nil, err
	}

	return s.tasks.FindAll(ctx, identity.UserID)
}

func (s basicService) Task(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64) (tasksvc.Task, error) {
	if err := authsvc.Authorize(identity.UserID, ownerID); err != nil {
		return tasksvc.Task{}, err
	}

	return s.tasks.Find(ctx, identity.UserID, taskID)
}

func (s basicService) UpdateTask(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64, patch tasksvc.TaskPatch) (tasksvc.Task, error) {
	if err := authsvc.Authorize(identity.UserID, ownerID); err != nil {
		return tasksvc.Task{}, err
	}
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return tasksvc.Task{}, err
		}
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return tasksvc.Task{}, err
		}
	}

	return s.tasks.Update(ctx, identity.UserID, taskID, patch)
}

func (s basicService) DeleteTask(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64) error {
	if err := authsvc.Authorize(identity.UserID, ownerID); err != nil {
		return err
	}

	return s.tasks.Delete(ctx, identity.UserID, taskID)
}

func (s basicService) CompleteTask(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64, isCompleted bool) (tasksvc.Task, error) {
	if err := authsvc.Authorize(identity.UserID, ownerID); err != nil {
		return tasksvc.Task{}, err
	}

	return s.tasks.SetCompleted(ctx, identity.UserID, taskID, isCompleted)
}

func validateTitle(title string) error {
	if len(title) < 1 || len(title) > 200 {
		return &authsvc.FieldError{Field: "title", Reason: "must be between 1 and 200 characters"}
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > 2000 {
		return &authsvc.FieldError{Field: "description", Reason: "must be at most 2000 characters"}
	}
	return nil
}
