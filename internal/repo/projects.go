package repo

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tgienger/avo/internal/ident"
	"github.com/tgienger/avo/internal/models"
	"github.com/tgienger/avo/internal/store"
)

// ProjectDraft holds the caller-supplied fields of a new project. The
// repository assigns the id and timestamp.
type ProjectDraft struct {
	OwnerID     string
	Name        string
	Description string
	Icon        string
	Color       string
}

// ListProjects returns every project. The user id is accepted for call-site
// symmetry but deliberately not used to filter: the workspace is shared and
// all projects are visible to every role.
func (r *Repository) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	if err := r.wait(ctx, latencyListProjects); err != nil {
		return nil, err
	}
	return readAll[models.Project](r.store, store.Projects)
}

// CreateProject appends a new project with a fresh id and timestamp.
func (r *Repository) CreateProject(ctx context.Context, draft ProjectDraft) (models.Project, error) {
	if err := r.wait(ctx, latencyCreateProject); err != nil {
		return models.Project{}, err
	}
	if err := r.authorize(mutCreateProject); err != nil {
		return models.Project{}, err
	}

	projects, err := readAll[models.Project](r.store, store.Projects)
	if err != nil {
		return models.Project{}, err
	}

	project := models.Project{
		ID:          ident.New(),
		OwnerID:     draft.OwnerID,
		Name:        draft.Name,
		Description: draft.Description,
		Icon:        draft.Icon,
		Color:       draft.Color,
		CreatedAt:   models.Now(),
	}
	projects = append(projects, project)

	if err := writeAll(r.store, store.Projects, projects); err != nil {
		return models.Project{}, err
	}

	r.log.WithFields(logrus.Fields{"project_id": project.ID, "name": project.Name}).Info("project created")
	return project, nil
}

// DeleteProject removes a project and cascades to its tasks and their
// comments. Deleting an absent id is a no-op.
func (r *Repository) DeleteProject(ctx context.Context, projectID string) error {
	if err := r.wait(ctx, latencyDeleteProject); err != nil {
		return err
	}
	if err := r.authorize(mutDeleteProject); err != nil {
		return err
	}

	projects, err := readAll[models.Project](r.store, store.Projects)
	if err != nil {
		return err
	}
	kept := projects[:0]
	for _, p := range projects {
		if p.ID != projectID {
			kept = append(kept, p)
		}
	}
	if err := writeAll(r.store, store.Projects, kept); err != nil {
		return err
	}

	tasks, err := readAll[models.Task](r.store, store.Tasks)
	if err != nil {
		return err
	}
	doomed := make(map[string]bool)
	keptTasks := tasks[:0]
	for _, t := range tasks {
		if t.ProjectID == projectID {
			doomed[t.ID] = true
			continue
		}
		keptTasks = append(keptTasks, t)
	}
	if err := writeAll(r.store, store.Tasks, keptTasks); err != nil {
		return err
	}

	comments, err := readAll[models.Comment](r.store, store.Comments)
	if err != nil {
		return err
	}
	keptComments := comments[:0]
	for _, c := range comments {
		if !doomed[c.TaskID] {
			keptComments = append(keptComments, c)
		}
	}
	if err := writeAll(r.store, store.Comments, keptComments); err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{"project_id": projectID, "tasks_removed": len(doomed)}).Info("project deleted")
	return nil
}
