package taskservice

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/log"
	"github.com/ichigozero/todokit/backend/authsvc"
	"github.com/ichigozero/todokit/backend/tasksvc"
)

type Middleware func(Service) Service

func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next Service) Service {
		return loggingMiddleware{logger, next}
	}
}

type loggingMiddleware struct {
	logger log.Logger
	next   Service
}

func (mw loggingMiddleware) CreateTask(ctx context.Context, identity authsvc.Identity, ownerID uint64, title, description string) (t tasksvc.Task, err error) {
	defer func() {
		mw.logger.Log(
			"method", "CreateTask",
			"user_id", identity.UserID,
			"title", title,
			"err", err,
		)
	}()
	return mw.next.CreateTask(ctx, identity, ownerID, title, description)
}

func (mw loggingMiddleware) Tasks(ctx context.Context, identity authsvc.Identity, ownerID uint64) (t []tasksvc.Task, err error) {
	defer func() {
		mw.logger.Log(
			"method", "Tasks",
			"user_id", identity.UserID,
			"err", err,
		)
	}()
	return mw.next.Tasks(ctx, identity, ownerID)
}

func (mw loggingMiddleware) Task(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64) (t tasksvc.Task, err error) {
	defer func() {
		mw.logger.Log(
			"method", "Task",
			"user_id", identity.UserID,
			"task_id", taskID,
			"err", err,
		)
	}()
	return mw.next.Task(ctx, identity, ownerID, taskID)
}

func (mw loggingMiddleware) UpdateTask(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64, patch tasksvc.TaskPatch) (t tasksvc.Task, err error) {
	defer func() {
		mw.logger.Log(
			"method", "UpdateTask",
			"user_id", identity.UserID,
			"task_id", taskID,
			"err", err,
		)
	}()
	return mw.next.UpdateTask(ctx, identity, ownerID, taskID, patch)
}

func (mw loggingMiddleware) DeleteTask(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64) (err error) {
	defer func() {
		mw.logger.Log(
			"method", "DeleteTask",
			"user_id", identity.UserID,
			"task_id", taskID,
			"err", err,
		)
	}()
	return mw.next.DeleteTask(ctx, identity, ownerID, taskID)
}

func (mw loggingMiddleware) CompleteTask(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64, isCompleted bool) (t tasksvc.Task, err error) {
	defer func() {
		mw.logger.Log(
			"method", "CompleteTask",
			"user_id", identity.UserID,
			"task_id", taskID,
			"is_completed", isCompleted,
			"err", err,
		)
	}()
	return mw.next.CompleteTask(ctx, identity, ownerID, taskID, isCompleted)
}

func InstrumentingMiddleware(counter metrics.Counter, latency metrics.Histogram) Middleware {
	return func(next Service) Service {
		return instrumentingMiddleware{counter, latency, next}
	}
}

type instrumentingMiddleware struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	next           Service
}

func (mw instrumentingMiddleware) CreateTask(ctx context.Context, identity authsvc.Identity, ownerID uint64, title, description string) (t tasksvc.Task, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "create_task").Add(1)
		mw.requestLatency.With("method", "create_task").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.CreateTask(ctx, identity, ownerID, title, description)
}

func (mw instrumentingMiddleware) Tasks(ctx context.Context, identity authsvc.Identity, ownerID uint64) (t []tasksvc.Task, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "tasks").Add(1)
		mw.requestLatency.With("method", "tasks").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.Tasks(ctx, identity, ownerID)
}

func (mw instrumentingMiddleware) Task(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64) (t tasksvc.Task, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "task").Add(1)
		mw.requestLatency.With("method", "task").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.Task(ctx, identity, ownerID, taskID)
}

func (mw instrumentingMiddleware) UpdateTask(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64, patch tasksvc.TaskPatch) (t tasksvc.Task, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "update_task").Add(1)
		mw.requestLatency.With("method", "update_task").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.UpdateTask(ctx, identity, ownerID, taskID, patch)
}

func (mw instrumentingMiddleware) DeleteTask(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64) (err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "delete_task").Add(1)
		mw.requestLatency.With("method", "delete_task").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.DeleteTask(ctx, identity, ownerID, taskID)
}

func (mw instrumentingMiddleware) CompleteTask(ctx context.Context, identity authsvc.Identity, ownerID, taskID uint64, isCompleted bool) (t tasksvc.Task, err error) {
	defer func(begin time.Time) {
		mw.requestCount.With("method", "complete_task").Add(1)
		mw.requestLatency.With("method", "complete_task").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mw.next.CompleteTask(ctx, identity, ownerID, taskID, isCompleted)
}
