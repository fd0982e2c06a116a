package repo

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tgienger/avo/internal/ident"
	"github.com/tgienger/avo/internal/models"
	"github.com/tgienger/avo/internal/store"
)

// TaskDraft holds the caller-supplied fields of a new task.
type TaskDraft struct {
	ProjectID   string
	Title       string
	Description string
	Status      models.Status
	Priority    models.Priority
	AssigneeID  string
}

// TaskPatch is a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *models.Status
	Priority    *models.Priority
	AssigneeID  *string
}

// ListTasks returns the tasks of a project in storage (creation) order.
func (r *Repository) ListTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	if err := r.wait(ctx, latencyListTasks); err != nil {
		return nil, err
	}
	tasks, err := readAll[models.Task](r.store, store.Tasks)
	if err != nil {
		return nil, err
	}
	var out []models.Task
	for _, t := range tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

// CreateTask appends a new task with a fresh id and timestamp.
func (r *Repository) CreateTask(ctx context.Context, draft TaskDraft) (models.Task, error) {
	if err := r.wait(ctx, latencyCreateTask); err != nil {
		return models.Task{}, err
	}
	if err := r.authorize(mutCreateTask); err != nil {
		return models.Task{}, err
	}

	tasks, err := readAll[models.Task](r.store, store.Tasks)
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          ident.New(),
		ProjectID:   draft.ProjectID,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		Priority:    draft.Priority,
		AssigneeID:  draft.AssigneeID,
		CreatedAt:   models.Now(),
	}
	tasks = append(tasks, task)

	if err := writeAll(r.store, store.Tasks, tasks); err != nil {
		return models.Task{}, err
	}

	r.log.WithFields(logrus.Fields{"task_id": task.ID, "project_id": task.ProjectID}).Info("task created")
	return task, nil
}

// UpdateTask merges a patch into an existing task. It fails with
// ErrNotFound when the id does not exist, leaving the collection unchanged.
func (r *Repository) UpdateTask(ctx context.Context, taskID string, patch TaskPatch) (models.Task, error) {
	if err := r.wait(ctx, latencyUpdateTask); err != nil {
		return models.Task{}, err
	}
	if err := r.authorize(mutUpdateTask); err != nil {
		return models.Task{}, err
	}

	tasks, err := readAll[models.Task](r.store, store.Tasks)
	if err != nil {
		return models.Task{}, err
	}

	idx := -1
	for i, t := range tasks {
		if t.ID == taskID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}

	t := &tasks[idx]
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.AssigneeID != nil {
		t.AssigneeID = *patch.AssigneeID
	}

	if err := writeAll(r.store, store.Tasks, tasks); err != nil {
		return models.Task{}, err
	}

	r.log.WithFields(logrus.Fields{"task_id": taskID}).Info("task updated")
	return tasks[idx], nil
}

// DeleteTasks removes every task whose id is in the list, in one write.
func (r *Repository) DeleteTasks(ctx context.Context, taskIDs []string) error {
	if err := r.wait(ctx, latencyDeleteTasks); err != nil {
		return err
	}
	if err := r.authorize(mutDeleteTasks); err != nil {
		return err
	}

	doomed := make(map[string]bool, len(taskIDs))
	for _, id := range taskIDs {
		doomed[id] = true
	}

	tasks, err := readAll[models.Task](r.store, store.Tasks)
	if err != nil {
		return err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if !doomed[t.ID] {
			kept = append(kept, t)
		}
	}
	if err := writeAll(r.store, store.Tasks, kept); err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{"count": len(taskIDs)}).Info("tasks deleted")
	return nil
}
