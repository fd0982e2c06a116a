package repo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tgienger/avo/internal/logging"
	"github.com/tgienger/avo/internal/models"
	"github.com/tgienger/avo/internal/store"
)

func newTestRepo(t *testing.T) (*Repository, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s, logging.Nop(), WithoutLatency()), s
}

func loginAdmin(t *testing.T, r *Repository) models.User {
	t.Helper()
	user, err := r.Login(context.Background(), "admin@avocado.com")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return user
}

func TestLoginIdempotentID(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	first, err := r.Login(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := r.Login(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("id changed across logins: %q vs %q", first.ID, second.ID)
	}
	if second.Role != models.RoleAdmin {
		t.Errorf("role = %s, want %s", second.Role, models.RoleAdmin)
	}
	if first.Name != "bob" {
		t.Errorf("name = %q, want %q", first.Name, "bob")
	}
}

func TestLoginRecomputesRole(t *testing.T) {
	r, s := newTestRepo(t)
	ctx := context.Background()

	user, err := r.Login(ctx, "client@example.com")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Role != models.RoleClient {
		t.Fatalf("role = %s, want %s", user.Role, models.RoleClient)
	}

	// Tamper with the stored role; the next login must overwrite it from
	// the email again.
	users, err := readAll[models.User](s, store.Users)
	if err != nil {
		t.Fatalf("read users: %v", err)
	}
	users[0].Role = models.RoleAdmin
	if err := writeAll(s, store.Users, users); err != nil {
		t.Fatalf("write users: %v", err)
	}

	again, err := r.Login(ctx, "client@example.com")
	if err != nil {
		t.Fatalf("relogin: %v", err)
	}
	if again.Role != models.RoleClient {
		t.Errorf("role after relogin = %s, want %s", again.Role, models.RoleClient)
	}
	if again.ID != user.ID {
		t.Errorf("id changed: %q vs %q", again.ID, user.ID)
	}
}

func TestSessionLifecycle(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	if _, ok, err := r.CurrentUser(); err != nil || ok {
		t.Fatalf("CurrentUser before login = ok %v err %v, want absent", ok, err)
	}

	user := loginAdmin(t, r)

	current, ok, err := r.CurrentUser()
	if err != nil || !ok {
		t.Fatalf("CurrentUser after login = ok %v err %v", ok, err)
	}
	if current.ID != user.ID {
		t.Errorf("session user = %q, want %q", current.ID, user.ID)
	}

	if err := r.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok, _ := r.CurrentUser(); ok {
		t.Error("session survived logout")
	}
}

func TestListProjectsIgnoresUserID(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	owner := loginAdmin(t, r)

	created, err := r.CreateProject(ctx, ProjectDraft{OwnerID: owner.ID, Name: "Launch"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	for _, userID := range []string{owner.ID, "somebody-else", ""} {
		projects, err := r.ListProjects(ctx, userID)
		if err != nil {
			t.Fatalf("list projects for %q: %v", userID, err)
		}
		found := 0
		for _, p := range projects {
			if p.ID == created.ID {
				found++
			}
		}
		if found != 1 {
			t.Errorf("listing for %q contains project %d times, want 1", userID, found)
		}
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	owner := loginAdmin(t, r)

	doomed, err := r.CreateProject(ctx, ProjectDraft{OwnerID: owner.ID, Name: "Doomed"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	keeper, err := r.CreateProject(ctx, ProjectDraft{OwnerID: owner.ID, Name: "Keeper"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	for _, pid := range []string{doomed.ID, keeper.ID} {
		if _, err := r.CreateTask(ctx, TaskDraft{
			ProjectID: pid, Title: "t", Status: models.StatusTodo, Priority: models.PriorityLow,
		}); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	if err := r.DeleteProject(ctx, doomed.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	projects, err := r.ListProjects(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != keeper.ID {
		t.Errorf("projects after delete = %v, want only keeper", projects)
	}

	if tasks, _ := r.ListTasks(ctx, doomed.ID); len(tasks) != 0 {
		t.Errorf("deleted project still has %d tasks", len(tasks))
	}
	if tasks, _ := r.ListTasks(ctx, keeper.ID); len(tasks) != 1 {
		t.Errorf("keeper project has %d tasks, want 1", len(tasks))
	}
}

func TestDeleteAbsentProjectIsNoop(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	loginAdmin(t, r)

	if err := r.DeleteProject(ctx, "never-existed"); err != nil {
		t.Errorf("deleting absent project: %v, want nil", err)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	owner := loginAdmin(t, r)

	project, err := r.CreateProject(ctx, ProjectDraft{OwnerID: owner.ID, Name: "P"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := r.CreateTask(ctx, TaskDraft{
		ProjectID: project.ID, Title: "keep", Status: models.StatusTodo, Priority: models.PriorityLow,
	}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	status := models.StatusDone
	_, err = r.UpdateTask(ctx, "missing", TaskPatch{Status: &status})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing task: %v, want ErrNotFound", err)
	}

	tasks, err := r.ListTasks(ctx, project.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Status != models.StatusTodo {
		t.Errorf("collection changed by failed update: %v", tasks)
	}
}

func TestCommentRoundTrip(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	user := loginAdmin(t, r)

	project, _ := r.CreateProject(ctx, ProjectDraft{OwnerID: user.ID, Name: "P"})
	first, _ := r.CreateTask(ctx, TaskDraft{
		ProjectID: project.ID, Title: "a", Status: models.StatusTodo, Priority: models.PriorityLow,
	})
	second, _ := r.CreateTask(ctx, TaskDraft{
		ProjectID: project.ID, Title: "b", Status: models.StatusTodo, Priority: models.PriorityLow,
	})

	comment, err := r.AddComment(ctx, first.ID, user, "looks good")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if comment.UserName != user.Name || comment.UserID != user.ID {
		t.Errorf("author snapshot = %q/%q, want %q/%q", comment.UserID, comment.UserName, user.ID, user.Name)
	}

	comments, err := r.ListComments(ctx, first.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 1 || comments[0].ID != comment.ID {
		t.Errorf("comments for task = %v, want the new comment", comments)
	}

	others, err := r.ListComments(ctx, second.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(others) != 0 {
		t.Errorf("unrelated task has %d comments", len(others))
	}
}

func TestLaunchScenario(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	owner := loginAdmin(t, r)

	project, err := r.CreateProject(ctx, ProjectDraft{OwnerID: owner.ID, Name: "Launch"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	task, err := r.CreateTask(ctx, TaskDraft{
		ProjectID: project.ID,
		Title:     "Draft plan",
		Status:    models.StatusTodo,
		Priority:  models.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	done := models.StatusDone
	updated, err := r.UpdateTask(ctx, task.ID, TaskPatch{Status: &done})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Status != models.StatusDone {
		t.Errorf("updated status = %s, want DONE", updated.Status)
	}
	if updated.Title != "Draft plan" || updated.Priority != models.PriorityMedium {
		t.Errorf("patch touched unrelated fields: %+v", updated)
	}

	tasks, err := r.ListTasks(ctx, project.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Status != models.StatusDone {
		t.Errorf("tasks = %+v, want one DONE task", tasks)
	}
}

func TestClientRolePermissions(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	// An admin sets up a project and a task, then a client signs in.
	admin := loginAdmin(t, r)
	project, _ := r.CreateProject(ctx, ProjectDraft{OwnerID: admin.ID, Name: "P"})
	task, _ := r.CreateTask(ctx, TaskDraft{
		ProjectID: project.ID, Title: "t", Status: models.StatusTodo, Priority: models.PriorityLow,
	})

	client, err := r.Login(ctx, "client@avocado.com")
	if err != nil {
		t.Fatalf("client login: %v", err)
	}

	if _, err := r.CreateProject(ctx, ProjectDraft{OwnerID: client.ID, Name: "Nope"}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("client CreateProject: %v, want ErrPermissionDenied", err)
	}
	if err := r.DeleteProject(ctx, project.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("client DeleteProject: %v, want ErrPermissionDenied", err)
	}
	done := models.StatusDone
	if _, err := r.UpdateTask(ctx, task.ID, TaskPatch{Status: &done}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("client UpdateTask: %v, want ErrPermissionDenied", err)
	}
	if err := r.DeleteTasks(ctx, []string{task.ID}); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("client DeleteTasks: %v, want ErrPermissionDenied", err)
	}

	// Clients may still read, create tasks, and comment.
	if _, err := r.ListTasks(ctx, project.ID); err != nil {
		t.Errorf("client ListTasks: %v", err)
	}
	if _, err := r.CreateTask(ctx, TaskDraft{
		ProjectID: project.ID, Title: "client task", Status: models.StatusTodo, Priority: models.PriorityLow,
	}); err != nil {
		t.Errorf("client CreateTask: %v", err)
	}
	if _, err := r.AddComment(ctx, task.ID, client, "hi"); err != nil {
		t.Errorf("client AddComment: %v", err)
	}
}

func TestMutationRequiresSession(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := r.CreateProject(ctx, ProjectDraft{Name: "P"})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("CreateProject with no session: %v, want ErrNotAuthenticated", err)
	}
}

func TestDeleteTasksBatch(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	owner := loginAdmin(t, r)

	project, _ := r.CreateProject(ctx, ProjectDraft{OwnerID: owner.ID, Name: "P"})
	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		task, err := r.CreateTask(ctx, TaskDraft{
			ProjectID: project.ID, Title: title, Status: models.StatusTodo, Priority: models.PriorityLow,
		})
		if err != nil {
			t.Fatalf("create task: %v", err)
		}
		ids = append(ids, task.ID)
	}

	if err := r.DeleteTasks(ctx, ids[:2]); err != nil {
		t.Fatalf("delete tasks: %v", err)
	}

	tasks, err := r.ListTasks(ctx, project.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != ids[2] {
		t.Errorf("remaining tasks = %v, want only %q", tasks, ids[2])
	}
}

func TestCorruptCollection(t *testing.T) {
	r, s := newTestRepo(t)
	ctx := context.Background()
	loginAdmin(t, r)

	if err := s.Write(store.Tasks, []byte("{not json")); err != nil {
		t.Fatalf("write garbage: %v", err)
	}

	_, err := r.ListTasks(ctx, "any")
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("list over corrupt collection: %v, want ErrCorrupt", err)
	}
}

func TestLatencyHonorsCancellation(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()
	r := New(s, logging.Nop()) // real latency

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Login(ctx, "bob@example.com"); !errors.Is(err, context.Canceled) {
		t.Errorf("login with cancelled context: %v, want context.Canceled", err)
	}
}

func TestStorageOrderPreserved(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	owner := loginAdmin(t, r)

	project, _ := r.CreateProject(ctx, ProjectDraft{OwnerID: owner.ID, Name: "P"})
	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := r.CreateTask(ctx, TaskDraft{
			ProjectID: project.ID, Title: title, Status: models.StatusTodo, Priority: models.PriorityLow,
		}); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	tasks, err := r.ListTasks(ctx, project.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	for i, title := range titles {
		if tasks[i].Title != title {
			t.Errorf("tasks[%d] = %q, want %q", i, tasks[i].Title, title)
		}
	}
}
