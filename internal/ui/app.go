package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/avo/internal/ai"
	"github.com/tgienger/avo/internal/models"
	"github.com/tgienger/avo/internal/repo"
	"github.com/tgienger/avo/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewLogin View = iota
	ViewProjects
	ViewTasks
)

type App struct {
	repo        *repo.Repository
	gateway     *ai.Gateway
	currentView View
	user        models.User
	loginView   *views.LoginView
	projectList *views.ProjectListView
	taskView    *views.TaskView
	width       int
	height      int
}

// NewApp creates the application shell.
func NewApp(repository *repo.Repository, gateway *ai.Gateway) *App {
	return &App{
		repo:        repository,
		gateway:     gateway,
		currentView: ViewLogin,
		loginView:   views.NewLoginView(repository),
	}
}

func (a *App) Init() tea.Cmd {
	// Restore a persisted session so a returning user skips the login
	// screen entirely.
	if user, ok, err := a.repo.CurrentUser(); err == nil && ok {
		return a.openProjects(user)
	}
	return a.loginView.Init()
}

func (a *App) openProjects(user models.User) tea.Cmd {
	a.user = user
	a.currentView = ViewProjects
	a.projectList = views.NewProjectListView(a.repo, user)
	return tea.Batch(
		a.projectList.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) openTasks(project models.Project) tea.Cmd {
	a.currentView = ViewTasks
	a.taskView = views.NewTaskView(a.repo, a.gateway, a.user, project)
	return tea.Batch(
		a.taskView.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case views.LoggedIn:
		return a, a.openProjects(msg.User)

	case views.LoggedOut:
		a.currentView = ViewLogin
		a.loginView = views.NewLoginView(a.repo)
		return a, tea.Batch(
			a.loginView.Init(),
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)

	case views.SelectedProject:
		return a, a.openTasks(msg.Project)

	case views.BackToProjects:
		return a, a.openProjects(a.user)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewLogin:
		_, cmd = a.loginView.Update(msg)
	case ViewProjects:
		_, cmd = a.projectList.Update(msg)
	case ViewTasks:
		_, cmd = a.taskView.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewProjects:
		if a.projectList != nil {
			return a.projectList.View()
		}
	case ViewTasks:
		if a.taskView != nil {
			return a.taskView.View()
		}
	}
	return a.loginView.View()
}
