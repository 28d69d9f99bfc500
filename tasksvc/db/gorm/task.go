package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/ichigozero/todokit/backend/tasksvc"
	stdgorm "gorm.io/gorm"
)

type taskRepository struct {
	db *stdgorm.DB
}

func NewTaskRepository(db *stdgorm.DB) tasksvc.TaskRepository {
	return &taskRepository{db}
}

func (t *taskRepository) Create(ctx context.Context, userID uint64, title, description string) (tasksvc.Task, error) {
	task := tasksvc.Task{UserID: userID, Title: title, Description: description}
	result := t.db.WithContext(ctx).Create(&task)

	return task, result.Error
}

// FindAll returns the user's tasks in creation order, insertion order on
// ties. A user with no tasks gets an empty slice, not an error.
func (t *taskRepository) FindAll(ctx context.Context, userID uint64) ([]tasksvc.Task, error) {
	tasks := []tasksvc.Task{}
	result := t.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&tasks)

	return tasks, result.Error
}

func (t *taskRepository) Find(ctx context.Context, userID, taskID uint64) (tasksvc.Task, error) {
	var task tasksvc.Task
	result := t.db.WithContext(ctx).Where("id = ? AND user_id = ?", taskID, userID).First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, stdgorm.ErrRecordNotFound) {
			return tasksvc.Task{}, tasksvc.ErrTaskNotFound
		}
		return tasksvc.Task{}, result.Error
	}

	return task, nil
}

func (t *taskRepository) Update(ctx context.Context, userID, taskID uint64, patch tasksvc.TaskPatch) (tasksvc.Task, error) {
	task, err := t.Find(ctx, userID, taskID)
	if err != nil {
		return tasksvc.Task{}, err
	}

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	result := t.db.WithContext(ctx).Model(&task).Updates(updates)
	if result.Error != nil {
		return tasksvc.Task{}, result.Error
	}

	return t.Find(ctx, userID, taskID)
}

func (t *taskRepository) Delete(ctx context.Context, userID, taskID uint64) error {
	result := t.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&tasksvc.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return tasksvc.ErrTaskNotFound
	}

	return nil
}

func (t *taskRepository) SetCompleted(ctx context.Context, userID, taskID uint64, isCompleted bool) (tasksvc.Task, error) {
	task, err := t.Find(ctx, userID, taskID)
	if err != nil {
		return tasksvc.Task{}, err
	}

	result := t.db.WithContext(ctx).Model(&task).Updates(map[string]interface{}{
		"is_completed": isCompleted,
		"updated_at":   time.Now().UTC(),
	})
	if result.Error != nil {
		return tasksvc.Task{}, result.Error
	}

	return t.Find(ctx, userID, taskID)
}
