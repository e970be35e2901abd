package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/money"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateReview
	importStateLearn
	importStateFailed
)

type mappingInput struct {
	pattern  string
	category string
}

// ImportModel loads a bank statement into one linked account, then lets the
// user teach categories for the rows it could not place.
type ImportModel struct {
	CommonModel
	services Services
	account  *account.Account

	state      importState
	filePicker filepicker.Model
	imported   list.Model
	result     *ledger.ImportResult

	form    *huh.Form
	mapping *mappingInput

	status string
	err    error
}

func NewImportModel(services Services, acc *account.Account) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".CSV", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		services:   services,
		account:    acc,
		filePicker: fp,
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateReview:
		return "m: map category for this description | Esc: back to dashboard"
	case importStateLearn:
		return "Enter: save | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case importResultMsg:
		if msg.err != nil {
			m.state = importStateFailed
			m.err = msg.err

			return m, nil
		}

		m.result = msg.result
		m.state = importStateReview
		m.status = fmt.Sprintf("Imported %s. %s balance is now %s.",
			FormatCount(len(msg.result.Transactions), "transaction"),
			msg.result.Account.BankName,
			money.Format(msg.result.Account.Balance))

		items := make([]list.Item, len(msg.result.Transactions))
		for i, t := range msg.result.Transactions {
			items[i] = importedItem{tx: t}
		}

		m.imported = list.New(items, importedDelegate{}, 80, 20)
		m.imported.Title = "Imported rows"
		m.imported.SetShowStatusBar(false)
		m.imported.SetFilteringEnabled(true)
		m.imported.SetShowHelp(false)

		return m, nil

	case learnResultMsg:
		m.state = importStateReview
		m.form = nil
		m.err = msg.err

		if msg.err == nil {
			m.status = fmt.Sprintf("Future %q rows will be filed under %s.", msg.pattern, msg.category)
		}

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}
	}

	switch m.state {
	case importStateFilePick:
		return m.updateFilePick(msg)
	case importStateReview:
		return m.updateReview(msg)
	case importStateLearn:
		return m.updateLearn(msg)
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateLearn:
		m.state = importStateReview
		m.form = nil

		return m, nil
	case importStateReview:
		if m.imported.FilterState() != list.Unfiltered {
			break
		}

		return m, Back
	case importStateFailed:
		m.state = importStateFilePick
		m.err = nil

		return m, nil
	case importStateImporting:
		return m, nil
	default:
		return m, Back
	}

	var cmd tea.Cmd
	m.imported, cmd = m.imported.Update(tea.KeyMsg{Type: tea.KeyEsc})

	return m, cmd
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing %s into %s...", path, m.account.BankName)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) updateReview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "m" && m.imported.FilterState() != list.Filtering {
		item, ok := m.imported.SelectedItem().(importedItem)
		if !ok {
			return m, nil
		}

		m.mapping = &mappingInput{pattern: item.tx.Description, category: item.tx.Category}
		m.form = newMappingForm(m.mapping, item.tx.Type)
		m.state = importStateLearn

		return m, m.form.Init()
	}

	var cmd tea.Cmd
	m.imported, cmd = m.imported.Update(msg)

	return m, cmd
}

func (m ImportModel) updateLearn(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.learnCmd(*m.mapping)
}

func newMappingForm(in *mappingInput, typ transaction.Type) *huh.Form {
	categories := transaction.ExpenseCategories
	if typ == transaction.TypeIncome {
		categories = transaction.IncomeCategories
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("When a description contains").
				Value(&in.pattern).
				Validate(required("pattern")),
			huh.NewSelect[string]().
				Title("File it under").
				Options(huh.NewOptions(categories...)...).
				Value(&in.category),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a statement to import into %s %s:\n\n%s",
				m.account.BankName, m.account.AccountNumberMasked, m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateReview:
		return m.viewReview()
	case importStateLearn:
		return lipgloss.NewStyle().Padding(1).Render(panelStyle.Render(m.form.View()))
	case importStateFailed:
		return lipgloss.NewStyle().Padding(2).Render(
			errorStyle.Render(fmt.Sprintf("Import failed: %s", friendly(m.err))) +
				"\n\nNothing was recorded. (Esc to pick another file)",
		)
	}

	return ""
}

func (m ImportModel) viewReview() string {
	lines := []string{successStyle.Render(m.status)}

	if m.err != nil {
		lines = append(lines, errorStyle.Render(friendly(m.err)))
	}

	lines = append(lines, "", m.imported.View(), faintStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Messages

type importResultMsg struct {
	result *ledger.ImportResult
	err    error
}

type learnResultMsg struct {
	pattern  string
	category string
	err      error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	l := m.services.ledgerFor(m.services.Sync.Owner())
	accountID := m.account.ID

	return func() tea.Msg {
		if l == nil {
			return importResultMsg{err: errDemo}
		}

		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.services.Statements.Import(ctx, l, accountID, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: result}
	}
}

func (m ImportModel) learnCmd(in mappingInput) tea.Cmd {
	owner := m.services.Sync.Owner()

	return func() tea.Msg {
		if owner == nil {
			return learnResultMsg{err: errNotSignedIn}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		err := m.services.Categorizer.Learn(ctx, owner.UserID(), in.pattern, in.category)

		return learnResultMsg{pattern: in.pattern, category: in.category, err: err}
	}
}

// Imported row list item

type importedItem struct {
	tx *transaction.Transaction
}

func (i importedItem) Title() string       { return i.tx.Description }
func (i importedItem) Description() string { return i.tx.Category }
func (i importedItem) FilterValue() string { return i.tx.Description }

type importedDelegate struct{}

func (d importedDelegate) Height() int                             { return 2 }
func (d importedDelegate) Spacing() int                            { return 0 }
func (d importedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d importedDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(importedItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	t := item.tx

	line1 := fmt.Sprintf("%s%s  %14s  %s", cursor, FormatDate(t.Date), FormatSigned(t), t.Description)
	line2 := faintStyle.Render(fmt.Sprintf("    %s", t.Category))

	fmt.Fprintf(w, "%s\n%s", line1, line2)
}
