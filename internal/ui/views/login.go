package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/avo/internal/models"
	"github.com/tgienger/avo/internal/repo"
	"github.com/tgienger/avo/internal/ui/keys"
	"github.com/tgienger/avo/internal/ui/styles"
)

// LoggedIn signals a successful sign-in.
type LoggedIn struct {
	User models.User
}

// LoginView is the sign-in screen: one email field, no password. The role
// is derived from the email, so the demo hints double as a role picker.
type LoginView struct {
	repo    *repo.Repository
	email   textinput.Model
	styles  *styles.Styles
	keys    keys.KeyMap
	width   int
	height  int
	loading bool
	errMsg  string
}

// NewLoginView creates the sign-in screen.
func NewLoginView(repository *repo.Repository) *LoginView {
	email := textinput.New()
	email.Placeholder = "name@company.com"
	email.CharLimit = 100
	email.Focus()

	return &LoginView{
		repo:   repository,
		email:  email,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *LoginView) Init() tea.Cmd {
	return textinput.Blink
}

type loginDoneMsg struct {
	user models.User
	err  error
}

func (v *LoginView) doLogin(email string) tea.Cmd {
	return func() tea.Msg {
		user, err := v.repo.Login(context.Background(), email)
		return loginDoneMsg{user: user, err: err}
	}
}

func (v *LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case loginDoneMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = "Sign-in failed. Check the log for details."
			return v, nil
		}
		return v, func() tea.Msg {
			return LoggedIn{User: msg.user}
		}

	case tea.KeyMsg:
		if v.loading {
			return v, nil
		}
		switch {
		case msg.String() == "ctrl+c":
			return v, tea.Quit
		case key.Matches(msg, v.keys.Enter):
			// Empty email short-circuits in the UI; the repository
			// itself never rejects one.
			email := v.email.Value()
			if email == "" {
				return v, nil
			}
			v.loading = true
			v.errMsg = ""
			return v, v.doLogin(email)
		}
	}

	var cmd tea.Cmd
	v.email, cmd = v.email.Update(msg)
	return v, cmd
}

func (v *LoginView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-10, 24, 44)

	status := s.TitleMuted.Render("Press ↵ to sign in")
	if v.loading {
		status = s.TitleMuted.Render("Signing in...")
	}
	if v.errMsg != "" {
		status = lipgloss.NewStyle().Foreground(styles.Current.Error).Render(v.errMsg)
	}

	form := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("🥑 Avocado Manager"),
		s.TitleMuted.Render("Simple, fresh project management."),
		"",
		"Work email:",
		s.InputFocused.Width(inputWidth).Render(v.email.View()),
		"",
		status,
		"",
		s.TitleMuted.Render("demo: admin@avocado.com (full access)"),
		s.TitleMuted.Render("      client@avocado.com (read & add only)"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}
