package repo

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tgienger/avo/internal/ident"
	"github.com/tgienger/avo/internal/models"
	"github.com/tgienger/avo/internal/store"
)

// ListComments returns a task's comments in storage order.
func (r *Repository) ListComments(ctx context.Context, taskID string) ([]models.Comment, error) {
	if err := r.wait(ctx, latencyComments); err != nil {
		return nil, err
	}
	comments, err := readAll[models.Comment](r.store, store.Comments)
	if err != nil {
		return nil, err
	}
	var out []models.Comment
	for _, c := range comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

// AddComment appends a comment, snapshotting the author's id, name, and
// avatar. Comments are append-only; nothing updates or deletes them.
func (r *Repository) AddComment(ctx context.Context, taskID string, author models.User, content string) (models.Comment, error) {
	if err := r.wait(ctx, latencyComments); err != nil {
		return models.Comment{}, err
	}
	if err := r.authorize(mutAddComment); err != nil {
		return models.Comment{}, err
	}

	comments, err := readAll[models.Comment](r.store, store.Comments)
	if err != nil {
		return models.Comment{}, err
	}

	comment := models.Comment{
		ID:         ident.New(),
		TaskID:     taskID,
		UserID:     author.ID,
		UserName:   author.Name,
		UserAvatar: author.Avatar,
		Content:    content,
		CreatedAt:  models.Now(),
	}
	comments = append(comments, comment)

	if err := writeAll(r.store, store.Comments, comments); err != nil {
		return models.Comment{}, err
	}

	r.log.WithFields(logrus.Fields{"task_id": taskID, "comment_id": comment.ID}).Info("comment added")
	return comment, nil
}
