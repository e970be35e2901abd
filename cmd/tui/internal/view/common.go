package view

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/aapnaincom/internal/auth"
	"github.com/MrJamesThe3rd/aapnaincom/internal/categorize"
	"github.com/MrJamesThe3rd/aapnaincom/internal/datasync"
	"github.com/MrJamesThe3rd/aapnaincom/internal/export"
	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/session"
	"github.com/MrJamesThe3rd/aapnaincom/internal/statement"
)

const dbTimeout = 5 * time.Second

var (
	errNotSignedIn = errors.New("not signed in")
	errDemo        = errors.New("demo mode: sign in to save changes")
)

// Services is what the screens read from and write through.
type Services struct {
	Auth        *auth.Service
	Session     *session.Manager
	Sync        *datasync.Layer
	Ledger      ledger.Repository
	Categorizer *categorize.Service
	Statements  *statement.Service
	Export      *export.Service
}

// ledgerFor returns the write path for owner. Demo identities get nil.
func (s Services) ledgerFor(owner *identity.Identity) *ledger.Ledger {
	if owner == nil || owner.Demo {
		return nil
	}

	return ledger.New(s.Ledger, *owner)
}

type CommonModel struct {
	Width  int
	Height int
}

// BackMsg returns to the dashboard.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// StatusMsg is a one-line outcome shown on the dashboard.
type StatusMsg struct {
	Text string
	Err  error
}

func status(text string, err error) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, Err: err}
	}
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	panelStyle   = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
