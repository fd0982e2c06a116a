package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/avo/internal/models"
	"github.com/tgienger/avo/internal/repo"
	"github.com/tgienger/avo/internal/ui/keys"
	"github.com/tgienger/avo/internal/ui/styles"
)

// Icons and colors offered by the new-project form.
var (
	projectIcons  = []string{"🥑", "🚀", "📦", "🎨", "🔧", "📈"}
	projectColors = []string{"emerald", "teal", "sky", "violet", "amber", "rose"}
)

type projectItem struct {
	project models.Project
}

func (i projectItem) Title() string       { return i.project.Icon + " " + i.project.Name }
func (i projectItem) Description() string { return i.project.Description }
func (i projectItem) FilterValue() string { return i.project.Name }

type projectDelegate struct {
	styles *styles.Styles
	width  int
}

func (d projectDelegate) Height() int                               { return 2 }
func (d projectDelegate) Spacing() int                              { return 1 }
func (d projectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(projectItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	title := titleStyle.Render(p.Title())
	desc := descStyle.Render(p.Description())

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// SelectedProject signals that a project was opened.
type SelectedProject struct {
	Project models.Project
}

// LoggedOut signals that the user signed out.
type LoggedOut struct{}

// ProjectListView is the dashboard: every project in the workspace,
// regardless of who owns it.
type ProjectListView struct {
	repo             *repo.Repository
	user             models.User
	list             list.Model
	delegate         *projectDelegate
	styles           *styles.Styles
	keys             keys.KeyMap
	width            int
	height           int
	creating         bool
	loaded           bool
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string
	newName          textinput.Model
	newDesc          textinput.Model
	iconIdx          int
	colorIdx         int
	focusIdx         int // 0=name, 1=desc, 2=icon, 3=confirm
	errMsg           string
}

// NewProjectListView creates the dashboard for a signed-in user.
func NewProjectListView(repository *repo.Repository, user models.User) *ProjectListView {
	s := styles.NewStyles()

	newName := textinput.New()
	newName.Placeholder = "Project name"
	newName.CharLimit = 100

	newDesc := textinput.New()
	newDesc.Placeholder = "Description (optional)"
	newDesc.CharLimit = 100

	delegate := &projectDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Projects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &ProjectListView{
		repo:     repository,
		user:     user,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		newName:  newName,
		newDesc:  newDesc,
	}
}

func (v *ProjectListView) Init() tea.Cmd {
	return v.loadProjects
}

func (v *ProjectListView) loadProjects() tea.Msg {
	projects, err := v.repo.ListProjects(context.Background(), v.user.ID)
	if err != nil {
		return err
	}
	return projectsLoadedMsg{projects: projects}
}

type projectsLoadedMsg struct {
	projects []models.Project
}

type projectCreatedMsg struct {
	project models.Project
	err     error
}

type projectDeletedMsg struct {
	err error
}

type loggedOutMsg struct{}

func (v *ProjectListView) createProject(draft repo.ProjectDraft) tea.Cmd {
	return func() tea.Msg {
		project, err := v.repo.CreateProject(context.Background(), draft)
		return projectCreatedMsg{project: project, err: err}
	}
}

func (v *ProjectListView) deleteProject(id string) tea.Cmd {
	return func() tea.Msg {
		return projectDeletedMsg{err: v.repo.DeleteProject(context.Background(), id)}
	}
}

func (v *ProjectListView) logout() tea.Msg {
	if err := v.repo.Logout(context.Background()); err != nil {
		return err
	}
	return loggedOutMsg{}
}

// isAdmin mirrors the repository's authorization so admin-only controls
// stay hidden; the repository still enforces the rule on every call.
func (v *ProjectListView) isAdmin() bool {
	return v.user.Role == models.RoleAdmin
}

func (v *ProjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case projectsLoadedMsg:
		items := make([]list.Item, len(msg.projects))
		for i, p := range msg.projects {
			items[i] = projectItem{project: p}
		}
		v.list.SetItems(items)
		v.loaded = true
		return v, nil

	case projectCreatedMsg:
		v.creating = false
		if msg.err != nil {
			v.errMsg = "Could not create project."
			return v, nil
		}
		return v, func() tea.Msg {
			return SelectedProject{Project: msg.project}
		}

	case projectDeletedMsg:
		v.confirmingDelete = false
		if msg.err != nil {
			v.errMsg = "Could not delete project."
			return v, nil
		}
		return v, v.loadProjects

	case loggedOutMsg:
		return v, func() tea.Msg {
			return LoggedOut{}
		}

	case tea.KeyMsg:
		v.errMsg = ""

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.creating {
			return v.updateCreating(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case msg.String() == "ctrl+l":
			return v, v.logout
		case key.Matches(msg, v.keys.New):
			if !v.isAdmin() {
				v.errMsg = "Clients cannot create projects."
				return v, nil
			}
			v.creating = true
			v.focusIdx = 0
			v.iconIdx = 0
			v.colorIdx = 0
			v.newName.Reset()
			v.newDesc.Reset()
			v.newName.Focus()
			v.newDesc.Blur()
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				return v, func() tea.Msg {
					return SelectedProject{Project: item.project}
				}
			}
		case key.Matches(msg, v.keys.Delete):
			if !v.isAdmin() {
				v.errMsg = "Clients cannot delete projects."
				return v, nil
			}
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				v.confirmingDelete = true
				v.deleteTargetID = item.project.ID
				v.deleteTargetName = item.project.Name
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *ProjectListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return v, v.deleteProject(v.deleteTargetID)
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *ProjectListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.submitProject()

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + 3) % 4
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 4
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < 3 {
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
		return v, v.submitProject()
	}

	// The icon row cycles with left/right while focused.
	if v.focusIdx == 2 {
		switch msg.String() {
		case "left", "h":
			v.iconIdx = (v.iconIdx + len(projectIcons) - 1) % len(projectIcons)
			v.colorIdx = (v.colorIdx + len(projectColors) - 1) % len(projectColors)
			return v, nil
		case "right", "l":
			v.iconIdx = (v.iconIdx + 1) % len(projectIcons)
			v.colorIdx = (v.colorIdx + 1) % len(projectColors)
			return v, nil
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.newName, cmd = v.newName.Update(msg)
	case 1:
		v.newDesc, cmd = v.newDesc.Update(msg)
	}
	return v, cmd
}

func (v *ProjectListView) submitProject() tea.Cmd {
	name := strings.TrimSpace(v.newName.Value())
	if name == "" {
		return nil
	}
	return v.createProject(repo.ProjectDraft{
		OwnerID:     v.user.ID,
		Name:        name,
		Description: strings.TrimSpace(v.newDesc.Value()),
		Icon:        projectIcons[v.iconIdx],
		Color:       projectColors[v.colorIdx],
	})
}

func (v *ProjectListView) updateFocus() {
	v.newName.Blur()
	v.newDesc.Blur()
	switch v.focusIdx {
	case 0:
		v.newName.Focus()
	case 1:
		v.newDesc.Focus()
	}
}

// View renders the view
func (v *ProjectListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.creating {
		return v.renderCreateForm()
	}

	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	header := v.renderHeader()
	content := header + "\n" + v.list.View() + "\n" + v.renderHelp()
	if v.errMsg != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(styles.Current.Error).Render(v.errMsg)
	}
	return styles.CenterView(content, v.width, v.height)
}

func (v *ProjectListView) renderHeader() string {
	s := v.styles
	role := s.ButtonPrimary.Render(" " + string(v.user.Role) + " ")
	return s.TitleBar.Render(fmt.Sprintf("Welcome back, %s ", v.user.Name)) + role
}

func (v *ProjectListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	hint := "Press 'n' to create your first project"
	if !v.isAdmin() {
		hint = "No projects yet. An admin needs to create one."
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Projects"),
		"",
		s.TitleMuted.Render(hint),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	nameStyle := s.Input
	descStyle := s.Input
	iconStyle := s.Input
	btnStyle := s.Button

	switch v.focusIdx {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		iconStyle = s.InputFocused
	case 3:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	iconRow := fmt.Sprintf("%s  %s", projectIcons[v.iconIdx], projectColors[v.colorIdx])

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("New Project"),
		"",
		"Name:",
		nameStyle.Width(inputWidth).Render(v.newName.View()),
		"",
		"Description:",
		descStyle.Width(inputWidth).Render(v.newDesc.View()),
		"",
		"Icon & color (←/→ to change):",
		iconStyle.Width(inputWidth).Render(iconRow),
		"",
		btnStyle.Render(" Create "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderHelp() string {
	if v.isAdmin() {
		return v.styles.Help.Render(
			fmt.Sprintf("%s open • %s new • %s del • %s sign out • %s quit",
				v.styles.HelpKey.Render("↵"),
				v.styles.HelpKey.Render("n"),
				v.styles.HelpKey.Render("d"),
				v.styles.HelpKey.Render("ctrl+l"),
				v.styles.HelpKey.Render("q"),
			),
		)
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s open • %s sign out • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("ctrl+l"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *ProjectListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Project?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q and all of its tasks will be removed.", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
