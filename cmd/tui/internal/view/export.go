package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/aapnaincom/internal/export"
	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

type exportState int

const (
	exportStateTimeframe exportState = iota
	exportStatePath
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	services Services

	state           exportState
	err             error
	timeframePicker TimeframePicker
	selection       TimeframeSelectedMsg

	form    *huh.Form
	path    *string // bound to the form, shared across model copies
	spinner spinner.Model

	file   string
	count  int
	digest string
	copied bool
}

func NewExportModel(services Services, dir string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		services:        services,
		state:           exportStateTimeframe,
		timeframePicker: NewTimeframePicker(TimeframeThisMonth),
		path:            new(dir),
		spinner:         s,
	}
}

func (m ExportModel) Title() string { return "Export Ledger" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "c: copy digest | Esc: back to dashboard"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.selection = tfMsg
		m.form = m.buildPathForm()
		m.state = exportStatePath

		return m, m.form.Init()
	}

	switch m.state {
	case exportStateTimeframe:
		return m.updateTimeframe(msg)
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = exportStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.file = result.file
		m.count = result.count
		m.digest = result.digest

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "c":
		if m.digest == "" {
			return m, nil
		}

		if err := clipboard.WriteAll(m.digest); err != nil {
			m.err = fmt.Errorf("copying digest: %w", err)
			return m, nil
		}

		m.copied = true
	}

	return m, nil
}

func (m ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(m.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case exportStatePath:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Writing ledger export...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil && m.file == "" {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	lines := []string{
		successStyle.Bold(true).Render("Export Complete!"),
		"",
		fmt.Sprintf("%s from %s written to %s", FormatCount(m.count, "transaction"), m.selection.Label(), m.file),
		"",
	}

	if m.digest != "" {
		lines = append(lines, "Digest:", "", m.digest)
	}

	switch {
	case m.err != nil:
		lines = append(lines, errorStyle.Render(m.err.Error()))
	case m.copied:
		lines = append(lines, faintStyle.Render("Digest copied to clipboard."))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

type exportResultMsg struct {
	file   string
	count  int
	digest string
	err    error
}

const exportTimeout = 2 * time.Minute

func (m ExportModel) runExportCmd() tea.Cmd {
	owner := m.services.Sync.Owner()
	synced := m.services.Sync.Transactions()
	filter := m.selection.Filter()
	dir := *m.path

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		txs := inRange(synced, filter)

		file, err := m.write(ctx, owner, filter, txs, dir, time.Now())
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{file: file, count: len(txs), digest: export.Digest(txs)}
	}
}

// write exports through the database for real users. Demo ledgers only exist
// in memory, so they are rendered straight from the synced fixtures.
func (m ExportModel) write(ctx context.Context, owner *identity.Identity, filter transaction.ListFilter, txs []*transaction.Transaction, dir string, now time.Time) (string, error) {
	if owner == nil {
		return "", errNotSignedIn
	}

	if !owner.Demo {
		return m.services.Export.ExportToDir(ctx, owner.UserID(), filter, dir, now)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, export.Filename(now))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return path, export.WriteCSV(f, txs)
}

func inRange(txs []*transaction.Transaction, filter transaction.ListFilter) []*transaction.Transaction {
	out := make([]*transaction.Transaction, 0, len(txs))

	for _, t := range txs {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}

	return out
}
