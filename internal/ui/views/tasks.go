package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/avo/internal/ai"
	"github.com/tgienger/avo/internal/models"
	"github.com/tgienger/avo/internal/repo"
	"github.com/tgienger/avo/internal/ui/keys"
	"github.com/tgienger/avo/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// ViewMode selects how tasks are laid out.
type ViewMode int

const (
	ModeBoard ViewMode = iota
	ModeList
)

// BackToProjects signals to go back to the project list.
type BackToProjects struct{}

// TaskView shows a project's tasks as a status board or a flat list.
type TaskView struct {
	repo    *repo.Repository
	gateway *ai.Gateway
	user    models.User
	project models.Project
	tasks   []models.Task
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	mode ViewMode
	col  int // board column (status index)
	row  int // board row within column
	idx  int // list cursor

	// Task creation
	editing     bool
	editTitle   textinput.Model
	editDesc    textarea.Model
	priorityIdx int
	editFocus   int // 0=title, 1=desc, 2=priority, 3=save

	// Task detail (read-only, with comments)
	viewing        bool
	comments       []models.Comment
	commentInput   textarea.Model
	commentFocused bool

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	// AI assistant
	aiPrompting bool
	goalInput   textinput.Model
	aiBusy      bool
	summary     string
	showSummary bool
	summaryBusy bool

	errMsg string
}

// NewTaskView creates the task view for a project.
func NewTaskView(repository *repo.Repository, gateway *ai.Gateway, user models.User, project models.Project) *TaskView {
	s := styles.NewStyles()

	editTitle := textinput.New()
	editTitle.Placeholder = "Task title"
	editTitle.CharLimit = 200

	editDesc := textarea.New()
	editDesc.Placeholder = "Description"
	editDesc.CharLimit = 1000
	editDesc.SetWidth(50)
	editDesc.SetHeight(3)
	editDesc.ShowLineNumbers = false

	commentInput := textarea.New()
	commentInput.Placeholder = "Add a comment..."
	commentInput.CharLimit = 2000
	commentInput.SetWidth(50)
	commentInput.SetHeight(3)
	commentInput.ShowLineNumbers = false

	goalInput := textinput.New()
	goalInput.Placeholder = "Describe a goal, e.g. launch the beta"
	goalInput.CharLimit = 300

	return &TaskView{
		repo:         repository,
		gateway:      gateway,
		user:         user,
		project:      project,
		styles:       s,
		keys:         keys.DefaultKeyMap(),
		editTitle:    editTitle,
		editDesc:     editDesc,
		commentInput: commentInput,
		goalInput:    goalInput,
	}
}

// Init initializes the view
func (v *TaskView) Init() tea.Cmd {
	return v.loadTasks
}

type tasksLoadedMsg struct {
	tasks []models.Task
}

type taskSavedMsg struct {
	err error
}

type tasksDeletedMsg struct {
	err error
}

type commentsLoadedMsg struct {
	comments []models.Comment
}

type commentAddedMsg struct {
	err error
}

type aiTasksMsg struct {
	created int
}

type summaryMsg struct {
	text string
}

func (v *TaskView) loadTasks() tea.Msg {
	tasks, err := v.repo.ListTasks(context.Background(), v.project.ID)
	if err != nil {
		return err
	}
	return tasksLoadedMsg{tasks: tasks}
}

func (v *TaskView) createTask(draft repo.TaskDraft) tea.Cmd {
	return func() tea.Msg {
		_, err := v.repo.CreateTask(context.Background(), draft)
		return taskSavedMsg{err: err}
	}
}

func (v *TaskView) moveTask(id string, status models.Status) tea.Cmd {
	return func() tea.Msg {
		_, err := v.repo.UpdateTask(context.Background(), id, repo.TaskPatch{Status: &status})
		return taskSavedMsg{err: err}
	}
}

func (v *TaskView) deleteTask(id string) tea.Cmd {
	return func() tea.Msg {
		return tasksDeletedMsg{err: v.repo.DeleteTasks(context.Background(), []string{id})}
	}
}

func (v *TaskView) loadComments(taskID string) tea.Cmd {
	return func() tea.Msg {
		comments, err := v.repo.ListComments(context.Background(), taskID)
		if err != nil {
			return err
		}
		return commentsLoadedMsg{comments: comments}
	}
}

func (v *TaskView) addComment(taskID, content string) tea.Cmd {
	return func() tea.Msg {
		_, err := v.repo.AddComment(context.Background(), taskID, v.user, content)
		return commentAddedMsg{err: err}
	}
}

// generateTasks asks the gateway to break the goal down, then creates the
// drafts one by one. The gateway fails soft, so a dead endpoint just
// produces zero tasks.
func (v *TaskView) generateTasks(goal string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()

		drafts := v.gateway.GenerateTasks(ctx, v.project.ID, goal)
		created := 0
		for _, d := range drafts {
			_, err := v.repo.CreateTask(ctx, repo.TaskDraft{
				ProjectID:   d.ProjectID,
				Title:       d.Title,
				Description: d.Description,
				Status:      d.Status,
				Priority:    d.Priority,
			})
			if err != nil {
				break
			}
			created++
		}
		return aiTasksMsg{created: created}
	}
}

func (v *TaskView) summarize() tea.Cmd {
	tasks := v.tasks
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		return summaryMsg{text: v.gateway.Summarize(ctx, tasks)}
	}
}

// byStatus returns the tasks of one board column, in storage order.
func (v *TaskView) byStatus(s models.Status) []models.Task {
	var out []models.Task
	for _, t := range v.tasks {
		if t.Status == s {
			out = append(out, t)
		}
	}
	return out
}

// selected returns the task under the cursor, if any.
func (v *TaskView) selected() (models.Task, bool) {
	switch v.mode {
	case ModeBoard:
		column := v.byStatus(models.Statuses()[v.col])
		if v.row < len(column) {
			return column[v.row], true
		}
	case ModeList:
		if v.idx < len(v.tasks) {
			return v.tasks[v.idx], true
		}
	}
	return models.Task{}, false
}

func (v *TaskView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tasksLoadedMsg:
		v.tasks = msg.tasks
		v.clampCursor()
		return v, nil

	case taskSavedMsg:
		if msg.err != nil {
			v.errMsg = permissionMessage(msg.err, "Could not save task.")
		}
		return v, v.loadTasks

	case tasksDeletedMsg:
		v.confirmingDelete = false
		if msg.err != nil {
			v.errMsg = permissionMessage(msg.err, "Could not delete task.")
		}
		return v, v.loadTasks

	case commentsLoadedMsg:
		v.comments = msg.comments
		return v, nil

	case commentAddedMsg:
		if msg.err != nil {
			v.errMsg = permissionMessage(msg.err, "Could not add comment.")
			return v, nil
		}
		v.commentInput.Reset()
		v.commentFocused = false
		v.commentInput.Blur()
		if task, ok := v.selected(); ok {
			return v, v.loadComments(task.ID)
		}
		return v, nil

	case aiTasksMsg:
		v.aiBusy = false
		v.aiPrompting = false
		if msg.created == 0 {
			v.errMsg = "No tasks generated."
		}
		return v, v.loadTasks

	case summaryMsg:
		v.summaryBusy = false
		v.summary = msg.text
		v.showSummary = true
		return v, nil

	case tea.KeyMsg:
		v.errMsg = ""

		if v.showSummary {
			v.showSummary = false
			return v, nil
		}
		if v.aiPrompting {
			return v.updateAIPrompt(msg)
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.viewing {
			return v.updateViewing(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg {
			return BackToProjects{}
		}

	case msg.String() == "v":
		if v.mode == ModeBoard {
			v.mode = ModeList
		} else {
			v.mode = ModeBoard
		}
		v.clampCursor()
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Delete):
		if v.user.Role != models.RoleAdmin {
			v.errMsg = "Clients cannot delete tasks."
			return v, nil
		}
		if task, ok := v.selected(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = task.ID
			v.deleteTargetName = task.Title
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if task, ok := v.selected(); ok {
			v.viewing = true
			v.comments = nil
			return v, v.loadComments(task.ID)
		}
		return v, nil

	case msg.String() == "g":
		v.aiPrompting = true
		v.goalInput.Reset()
		v.goalInput.Focus()
		return v, textinput.Blink

	case msg.String() == "s":
		v.summaryBusy = true
		return v, v.summarize()

	case msg.String() == "H", msg.String() == "shift+left":
		return v, v.shiftStatus(-1)

	case msg.String() == "L", msg.String() == "shift+right":
		return v, v.shiftStatus(1)

	case key.Matches(msg, v.keys.Up):
		v.moveCursor(0, -1)
		return v, nil

	case key.Matches(msg, v.keys.Down):
		v.moveCursor(0, 1)
		return v, nil

	case key.Matches(msg, v.keys.Left):
		v.moveCursor(-1, 0)
		return v, nil

	case key.Matches(msg, v.keys.Right):
		v.moveCursor(1, 0)
		return v, nil
	}

	return v, nil
}

// shiftStatus moves the selected task one board column left or right.
func (v *TaskView) shiftStatus(dir int) tea.Cmd {
	if v.user.Role != models.RoleAdmin {
		v.errMsg = "Clients cannot move tasks."
		return nil
	}
	task, ok := v.selected()
	if !ok {
		return nil
	}
	all := models.Statuses()
	cur := 0
	for i, s := range all {
		if s == task.Status {
			cur = i
			break
		}
	}
	next := clamp(cur+dir, 0, len(all)-1)
	if next == cur {
		return nil
	}
	return v.moveTask(task.ID, all[next])
}

func (v *TaskView) moveCursor(dx, dy int) {
	switch v.mode {
	case ModeBoard:
		v.col = clamp(v.col+dx, 0, len(models.Statuses())-1)
		column := v.byStatus(models.Statuses()[v.col])
		v.row = clamp(v.row+dy, 0, max(len(column)-1, 0))
	case ModeList:
		v.idx = clamp(v.idx+dy, 0, max(len(v.tasks)-1, 0))
	}
}

func (v *TaskView) clampCursor() {
	column := v.byStatus(models.Statuses()[v.col])
	v.row = clamp(v.row, 0, max(len(column)-1, 0))
	v.idx = clamp(v.idx, 0, max(len(v.tasks)-1, 0))
}

func (v *TaskView) startNewTask() {
	v.editing = true
	v.editFocus = 0
	v.priorityIdx = 1 // medium
	v.editTitle.Reset()
	v.editDesc.Reset()
	v.editTitle.Focus()
	v.editDesc.Blur()
}

func (v *TaskView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.submitTask()

	case msg.String() == "shift+tab":
		v.editFocus = (v.editFocus + 3) % 4
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.editFocus = (v.editFocus + 1) % 4
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.editFocus == 0 || v.editFocus == 2 {
			v.editFocus++
			v.updateEditFocus()
			return v, nil
		}
		if v.editFocus == 3 {
			return v, v.submitTask()
		}
	}

	if v.editFocus == 2 {
		switch msg.String() {
		case "left", "h":
			v.priorityIdx = (v.priorityIdx + len(models.Priorities()) - 1) % len(models.Priorities())
			return v, nil
		case "right", "l":
			v.priorityIdx = (v.priorityIdx + 1) % len(models.Priorities())
			return v, nil
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch v.editFocus {
	case 0:
		v.editTitle, cmd = v.editTitle.Update(msg)
	case 1:
		v.editDesc, cmd = v.editDesc.Update(msg)
	}
	return v, cmd
}

func (v *TaskView) updateEditFocus() {
	v.editTitle.Blur()
	v.editDesc.Blur()
	switch v.editFocus {
	case 0:
		v.editTitle.Focus()
	case 1:
		v.editDesc.Focus()
	}
}

func (v *TaskView) submitTask() tea.Cmd {
	title := strings.TrimSpace(v.editTitle.Value())
	if title == "" {
		return nil
	}
	v.editing = false
	return v.createTask(repo.TaskDraft{
		ProjectID:   v.project.ID,
		Title:       title,
		Description: strings.TrimSpace(v.editDesc.Value()),
		Status:      models.StatusTodo,
		Priority:    models.Priorities()[v.priorityIdx],
	})
}

func (v *TaskView) updateViewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.commentFocused {
		switch msg.String() {
		case "esc":
			v.commentFocused = false
			v.commentInput.Blur()
			return v, nil
		case "ctrl+s":
			content := strings.TrimSpace(v.commentInput.Value())
			if content == "" {
				return v, nil
			}
			if task, ok := v.selected(); ok {
				return v, v.addComment(task.ID, content)
			}
			return v, nil
		}
		var cmd tea.Cmd
		v.commentInput, cmd = v.commentInput.Update(msg)
		return v, cmd
	}

	switch msg.String() {
	case "esc", "q":
		v.viewing = false
		return v, nil
	case "c":
		v.commentFocused = true
		v.commentInput.Focus()
		return v, textarea.Blink
	}
	return v, nil
}

func (v *TaskView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return v, v.deleteTask(v.deleteTargetID)
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskView) updateAIPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.aiBusy {
		return v, nil
	}
	switch msg.String() {
	case "esc":
		v.aiPrompting = false
		return v, nil
	case "enter":
		goal := strings.TrimSpace(v.goalInput.Value())
		if goal == "" {
			return v, nil
		}
		v.aiBusy = true
		return v, v.generateTasks(goal)
	}
	var cmd tea.Cmd
	v.goalInput, cmd = v.goalInput.Update(msg)
	return v, cmd
}

// permissionMessage maps authorization failures to a friendly message and
// everything else to the fallback.
func permissionMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, repo.ErrPermissionDenied) {
		return "Your role does not allow that."
	}
	return fallback
}

// View renders the view
func (v *TaskView) View() string {
	if v.showSummary {
		return v.renderSummary()
	}
	if v.aiPrompting {
		return v.renderAIPrompt()
	}
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.viewing {
		return v.renderTaskDetail()
	}
	if v.editing {
		return v.renderEditForm()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")

	if v.mode == ModeBoard {
		b.WriteString(v.renderBoard())
	} else {
		b.WriteString(v.renderList())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	if v.summaryBusy {
		b.WriteString("\n")
		b.WriteString(v.styles.TitleMuted.Render("Summarizing..."))
	}
	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Current.Error).Render(v.errMsg))
	}

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskView) renderHeader() string {
	s := v.styles
	mode := "board"
	if v.mode == ModeList {
		mode = "list"
	}
	return s.TitleBar.Render(fmt.Sprintf("%s %s", v.project.Icon, v.project.Name)) +
		s.TitleMuted.Render(fmt.Sprintf("  %d tasks • %s view", len(v.tasks), mode))
}

func (v *TaskView) renderBoard() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	all := models.Statuses()
	colWidth := max(contentWidth/len(all)-2, 16)

	colHeight := max(v.height-10, 6)

	var cols []string
	for ci, status := range all {
		column := v.byStatus(status)

		header := s.ColumnHeader.
			Foreground(styles.StatusColor(status)).
			Render(fmt.Sprintf("%s (%d)", status.Label(), len(column)))

		var cards []string
		cards = append(cards, header)
		for ri, task := range column {
			cards = append(cards, v.renderCard(task, colWidth-2, ci == v.col && ri == v.row))
		}
		if len(column) == 0 {
			cards = append(cards, s.TitleMuted.Render(" empty"))
		}

		body := lipgloss.JoinVertical(lipgloss.Left, cards...)

		colStyle := s.Column
		if ci == v.col {
			colStyle = s.ColumnFocus
		}
		cols = append(cols, colStyle.Width(colWidth).Height(colHeight).Render(body))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (v *TaskView) renderCard(task models.Task, width int, selected bool) string {
	s := v.styles

	prio := lipgloss.NewStyle().
		Foreground(styles.PriorityColor(task.Priority)).
		Render(task.Priority.Label())

	title := task.Title
	if len(title) > width {
		title = title[:max(width-1, 1)] + "…"
	}

	line := title + "\n" + prio
	if selected {
		return s.ListSelected.Width(width).Render(line)
	}
	return s.ListItem.Width(width).Render(line)
}

func (v *TaskView) renderList() string {
	s := v.styles

	if len(v.tasks) == 0 {
		return s.TitleMuted.Render("No tasks. Press 'n' to create one, or 'g' to generate some.")
	}

	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	var items []string
	for i, task := range v.tasks {
		status := lipgloss.NewStyle().
			Foreground(styles.StatusColor(task.Status)).
			Render(fmt.Sprintf("[%s]", task.Status.Label()))
		prio := lipgloss.NewStyle().
			Foreground(styles.PriorityColor(task.Priority)).
			Render(task.Priority.Label())

		line := fmt.Sprintf("%s %s  %s", status, task.Title, prio)

		itemStyle := s.ListItem.Width(width)
		if i == v.idx {
			itemStyle = s.ListSelected.Width(width)
		}
		items = append(items, itemStyle.Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	titleStyle := s.Input
	descStyle := s.Input
	prioStyle := s.Input
	btnStyle := s.Button

	switch v.editFocus {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		prioStyle = s.InputFocused
	case 3:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)
	priority := models.Priorities()[v.priorityIdx]
	prioRow := lipgloss.NewStyle().
		Foreground(styles.PriorityColor(priority)).
		Render(priority.Label())

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("New Task"),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.editTitle.View()),
		"",
		"Description:",
		descStyle.Width(inputWidth).Render(v.editDesc.View()),
		"",
		"Priority (←/→ to change):",
		prioStyle.Width(inputWidth).Render(prioRow),
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

func (v *TaskView) renderTaskDetail() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	task, ok := v.selected()
	if !ok {
		v.viewing = false
		return ""
	}

	status := lipgloss.NewStyle().
		Foreground(styles.StatusColor(task.Status)).
		Render(task.Status.Label())
	prio := lipgloss.NewStyle().
		Foreground(styles.PriorityColor(task.Priority)).
		Render(task.Priority.Label())

	lines := []string{
		s.Title.Render(task.Title),
		"",
		fmt.Sprintf("Status: %s   Priority: %s", status, prio),
	}
	if task.Description != "" {
		lines = append(lines, "", task.Description)
	}
	created := time.UnixMilli(task.CreatedAt).Format("Jan 2, 2006")
	lines = append(lines, "", s.TitleMuted.Render("Created "+created))

	lines = append(lines, "", s.Title.Render("Comments"))
	if len(v.comments) == 0 {
		lines = append(lines, s.TitleMuted.Render("No comments yet."))
	} else {
		for _, c := range v.comments {
			when := time.UnixMilli(c.CreatedAt).Format("Jan 2 15:04")
			lines = append(lines,
				s.HelpKey.Render(c.UserName)+s.TitleMuted.Render(" • "+when),
				"  "+c.Content,
			)
		}
	}

	lines = append(lines, "")
	inputWidth := clamp(contentWidth-8, 20, 52)
	inputStyle := s.Input
	if v.commentFocused {
		inputStyle = s.InputFocused
	}
	lines = append(lines, inputStyle.Width(inputWidth).Render(v.commentInput.View()))
	if v.commentFocused {
		lines = append(lines, s.TitleMuted.Render("Ctrl+S: post • Esc: unfocus"))
	} else {
		lines = append(lines, s.TitleMuted.Render("c: comment • Esc: close"))
	}

	panel := s.Panel.Width(clamp(contentWidth-2, 30, 64)).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		panel,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskView) renderAIPrompt() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-10, 24, 52)

	status := s.TitleMuted.Render("↵ generate • Esc: cancel")
	if v.aiBusy {
		status = s.TitleMuted.Render("Thinking...")
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("✨ AI Assistant"),
		s.TitleMuted.Render("Break a goal down into 4-8 tasks."),
		"",
		s.InputFocused.Width(inputWidth).Render(v.goalInput.View()),
		"",
		status,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Panel.Render(form),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskView) renderSummary() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	panel := s.Panel.Width(clamp(contentWidth-4, 30, 64)).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("✨ Project Summary"),
			"",
			v.summary,
			"",
			s.TitleMuted.Render("Press any key to close"),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		panel,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q will be removed.", v.deleteTargetName)),
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

func (v *TaskView) renderHelp() string {
	s := v.styles
	base := fmt.Sprintf("%s open • %s new • %s move • %s view • %s AI • %s summary",
		s.HelpKey.Render("↵"),
		s.HelpKey.Render("n"),
		s.HelpKey.Render("H/L"),
		s.HelpKey.Render("v"),
		s.HelpKey.Render("g"),
		s.HelpKey.Render("s"),
	)
	if v.user.Role == models.RoleAdmin {
		base += fmt.Sprintf(" • %s del", s.HelpKey.Render("d"))
	}
	base += fmt.Sprintf(" • %s back", s.HelpKey.Render("esc"))
	return s.Help.Render(base)
}
