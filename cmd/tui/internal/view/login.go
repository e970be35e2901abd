package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/aapnaincom/internal/auth"
)

const (
	actionSignIn = "signin"
	actionSignUp = "signup"
	actionDemo   = "demo"
)

type credentials struct {
	action      string
	email       string
	password    string
	displayName string
}

// LoginModel is shown while nobody is signed in.
type LoginModel struct {
	CommonModel
	services Services

	form    *huh.Form
	creds   *credentials
	busy    bool
	err     error
	appName string
}

func NewLoginModel(services Services, appName string) LoginModel {
	m := LoginModel{services: services, appName: appName}
	m.reset()

	return m
}

func (m *LoginModel) reset() {
	creds := &credentials{action: actionSignIn}
	if m.creds != nil {
		creds.action = m.creds.action
		creds.email = m.creds.email
	}

	m.creds = creds
	m.busy = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("Welcome").
				Options(
					huh.NewOption("Sign in", actionSignIn),
					huh.NewOption("Create an account", actionSignUp),
					huh.NewOption("Explore the demo", actionDemo),
				).
				Value(&creds.action),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Placeholder("you@example.com").
				Value(&creds.email).
				Validate(required("email")),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&creds.password).
				Validate(required("password")),
		).WithHideFunc(func() bool { return creds.action == actionDemo }),
		huh.NewGroup(
			huh.NewInput().
				Key("display_name").
				Title("Your name").
				Description("Shown in the dashboard greeting").
				Value(&creds.displayName),
		).WithHideFunc(func() bool { return creds.action != actionSignUp }),
	).WithWidth(50).WithShowHelp(false)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

func (m LoginModel) Title() string { return "Sign in" }

func (m LoginModel) ShortHelp() string {
	if m.busy {
		return "Signing in..."
	}

	return "Enter: next | Ctrl+C: quit"
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(loginResultMsg); ok {
		if result.err != nil {
			m.err = result.err
			m.reset()

			return m, m.form.Init()
		}

		// The session switch reaches the root model through the sync layer.
		m.busy = false
		m.err = nil

		return m, nil
	}

	if m.busy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.busy = true

	return m, m.submitCmd(*m.creds)
}

type loginResultMsg struct {
	err error
}

func (m LoginModel) submitCmd(c credentials) tea.Cmd {
	return func() tea.Msg {
		if c.action == actionDemo {
			m.services.Session.EnterDemo()
			return loginResultMsg{}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		var (
			sess *auth.Session
			err  error
		)

		if c.action == actionSignUp {
			sess, err = m.services.Auth.SignUp(ctx, c.email, c.password, c.displayName)
		} else {
			sess, err = m.services.Auth.SignIn(ctx, c.email, c.password)
		}

		if err != nil {
			return loginResultMsg{err: err}
		}

		m.services.Session.SignIn(sess.User)

		return loginResultMsg{}
	}
}

func (m LoginModel) View() string {
	header := titleStyle.Render(m.appName) + "\n" + faintStyle.Render("Your money, at a glance.")

	body := m.form.View()
	if m.busy {
		body = "Signing in..."
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, "", body)

	if m.err != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", errorStyle.Render(friendly(m.err)))
	}

	return lipgloss.NewStyle().Padding(2).Render(panelStyle.Render(content))
}

// friendly is the user-facing text of err.
func friendly(err error) string {
	var ae *auth.Error
	if errors.As(err, &ae) {
		return ae.Message
	}

	return err.Error()
}
