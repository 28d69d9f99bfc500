package taskservice

import (
	"context"
	"strings"
	"testing"

	"github.com/ichigozero/todokit/backend/authsvc"
	"github.com/ichigozero/todokit/backend/tasksvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRepository counts calls and remembers the user ID it was scoped
// with, so tests can assert the guard ran before any store access.
type recordingRepository struct {
	calls      int
	lastUserID uint64
}

func (r *recordingRepository) record(userID uint64) {
	r.calls++
	r.lastUserID = userID
}

func (r *recordingRepository) Create(_ context.Context, userID uint64, title, description string) (tasksvc.Task, error) {
	r.record(userID)
	return tasksvc.Task{ID: 1, UserID: userID, Title: title, Description: description}, nil
}

func (r *recordingRepository) FindAll(_ context.Context, userID uint64) ([]tasksvc.Task, error) {
	r.record(userID)
	return []tasksvc.Task{}, nil
}

func (r *recordingRepository) Find(_ context.Context, userID, taskID uint64) (tasksvc.Task, error) {
	r.record(userID)
	return tasksvc.Task{ID: taskID, UserID: userID}, nil
}

func (r *recordingRepository) Update(_ context.Context, userID, taskID uint64, patch tasksvc.TaskPatch) (tasksvc.Task, error) {
	r.record(userID)
	return tasksvc.Task{ID: taskID, UserID: userID}, nil
}

func (r *recordingRepository) Delete(_ context.Context, userID, taskID uint64) error {
	r.record(userID)
	return nil
}

func (r *recordingRepository) SetCompleted(_ context.Context, userID, taskID uint64, isCompleted bool) (tasksvc.Task, error) {
	r.record(userID)
	return tasksvc.Task{ID: taskID, UserID: userID, IsCompleted: isCompleted}, nil
}

func TestGuardRunsBeforeStore(t *testing.T) {
	repo := &recordingRepository{}
	svc := NewBasicService(repo)
	ctx := context.Background()
	identity := authsvc.Identity{UserID: 1, Email: "a@x.com"}

	calls := []func() error{
		func() error { _, err := svc.CreateTask(ctx, identity, 2, "buy milk", ""); return err },
		func() error { _, err := svc.Tasks(ctx, identity, 2); return err },
		func() error { _, err := svc.Task(ctx, identity, 2, 1); return err },
		func() error { _, err := svc.UpdateTask(ctx, identity, 2, 1, tasksvc.TaskPatch{}); return err },
		func() error { return svc.DeleteTask(ctx, identity, 2, 1) },
		func() error { _, err := svc.CompleteTask(ctx, identity, 2, 1, true); return err },
	}
	for _, call := range calls {
		assert.ErrorIs(t, call(), authsvc.ErrAccessDenied)
	}
	assert.Zero(t, repo.calls)
}

func TestStoreScopedByIdentity(t *testing.T) {
	repo := &recordingRepository{}
	svc := NewBasicService(repo)
	ctx := context.Background()
	identity := authsvc.Identity{UserID: 7, Email: "a@x.com"}

	task, err := svc.CreateTask(ctx, identity, 7, "buy milk", "two liters")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), task.UserID)
	assert.Equal(t, uint64(7), repo.lastUserID)

	_, err = svc.Tasks(ctx, identity, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), repo.lastUserID)
}

func TestCreateTaskValidation(t *testing.T) {
	repo := &recordingRepository{}
	svc := NewBasicService(repo)
	ctx := context.Background()
	identity := authsvc.Identity{UserID: 1, Email: "a@x.com"}

	for _, tc := range []struct {
		name        string
		title       string
		description string
		field       string
	}{
		{"empty title", "", "", "title"},
		{"title too long", strings.Repeat("a", 201), "", "title"},
		{"description too long", "buy milk", strings.Repeat("a", 2001), "description"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTask(ctx, identity, 1, tc.title, tc.description)

			var fieldErr *authsvc.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tc.field, fieldErr.Field)
		})
	}
	assert.Zero(t, repo.calls)

	longest := strings.Repeat("a", 200)
	_, err := svc.CreateTask(ctx, identity, 1, longest, strings.Repeat("b", 2000))
	assert.NoError(t, err)
}

func TestUpdateTaskValidation(t *testing.T) {
	repo := &recordingRepository{}
	svc := NewBasicService(repo)
	ctx := context.Background()
	identity := authsvc.Identity{UserID: 1, Email: "a@x.com"}

	empty := ""
	_, err := svc.UpdateTask(ctx, identity, 1, 1, tasksvc.TaskPatch{Title: &empty})
	var fieldErr *authsvc.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "title", fieldErr.Field)
	assert.Zero(t, repo.calls)

	// Nil fields are not validated, only applied ones.
	_, err = svc.UpdateTask(ctx, identity, 1, 1, tasksvc.TaskPatch{})
	assert.NoError(t, err)
}
