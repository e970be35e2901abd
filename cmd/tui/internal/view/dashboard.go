package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/aapnaincom/internal/account"
	"github.com/MrJamesThe3rd/aapnaincom/internal/bank"
	"github.com/MrJamesThe3rd/aapnaincom/internal/identity"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/money"
	"github.com/MrJamesThe3rd/aapnaincom/internal/summary"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

// SyncMsg is sent whenever the sync layer has new data or a new owner.
type SyncMsg struct{}

// OpenImportMsg asks for the statement import screen for one account.
type OpenImportMsg struct {
	Account *account.Account
}

// OpenExportMsg asks for the export screen.
type OpenExportMsg struct{}

type dashFocus int

const (
	focusTransactions dashFocus = iota
	focusAccounts
)

type dashMode int

const (
	modeBrowse dashMode = iota
	modeSearch
	modeForm
)

type dashAction int

const (
	actionRecord dashAction = iota
	actionLink
	actionDeposit
	actionWithdraw
	actionUnlink
	actionDelete
)

var typeFilters = []struct {
	label string
	typ   transaction.Type
}{
	{"All", ""},
	{"Income", transaction.TypeIncome},
	{"Expense", transaction.TypeExpense},
}

type DashboardModel struct {
	CommonModel
	services Services
	now      func() time.Time

	owner    *identity.Identity
	txs      []*transaction.Transaction
	visible  []*transaction.Transaction
	accounts []*account.Account
	banner   string

	focus     dashFocus
	mode      dashMode
	accCursor int
	typeIdx   int
	breakdown bool
	search    textinput.Model
	table     table.Model

	form    *huh.Form
	action  dashAction
	target  uuid.UUID
	entry   *entryInput
	link    *linkInput
	amount  *amountInput
	confirm *confirmInput

	status    string
	statusErr bool
}

func NewDashboardModel(services Services) DashboardModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 28},
		{Title: "Category", Width: 16},
		{Title: "Via", Width: 18},
		{Title: "Amount", Width: 16},
		{Title: "Added", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "description, category or bank"
	search.CharLimit = 64
	search.Width = 40

	m := DashboardModel{
		services: services,
		now:      time.Now,
		table:    t,
		search:   search,
	}
	m.reload()

	return m
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	switch m.mode {
	case modeSearch:
		return "Enter: keep filter | Esc: clear"
	case modeForm:
		return "Enter: next | Esc: cancel"
	}

	if m.focus == focusAccounts {
		if acc := m.selectedAccount(); acc != nil && acc.Frozen() {
			return "Tab: transactions | ↑/↓: select | l: link | f: unfreeze | u: unlink | i: import | o: sign out | q: quit"
		}

		return "Tab: transactions | ↑/↓: select | l: link | +/-: deposit/withdraw | f: freeze | u: unlink | i: import | o: sign out | q: quit"
	}

	return "Tab: accounts | a: add | x: delete | /: search | t: type | b: breakdown | e: export | o: sign out | q: quit"
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// reload copies the current view of the sync layer into the model.
func (m *DashboardModel) reload() {
	layer := m.services.Sync

	m.owner = layer.Owner()
	m.txs = layer.Transactions()
	m.accounts = layer.Accounts()
	m.banner = layer.Banner()

	if m.accCursor >= len(m.accounts) {
		m.accCursor = max(len(m.accounts)-1, 0)
	}

	m.refilter()
}

func (m *DashboardModel) refilter() {
	m.visible = transaction.Filter(m.txs, m.search.Value(), typeFilters[m.typeIdx].typ)

	now := m.now()
	rows := make([]table.Row, 0, len(m.visible))

	for _, t := range m.visible {
		via := "Cash"
		if t.PaymentMethod == transaction.PaymentBank {
			via = t.BankName
		}

		rows = append(rows, table.Row{
			FormatDate(t.Date),
			t.Description,
			t.Category,
			via,
			FormatSigned(t),
			FormatAgo(t.CreatedAt, now),
		})
	}

	m.table.SetRows(rows)
}

func (m DashboardModel) selectedAccount() *account.Account {
	if m.accCursor < 0 || m.accCursor >= len(m.accounts) {
		return nil
	}

	return m.accounts[m.accCursor]
}

func (m DashboardModel) selectedTransaction() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}

	return m.visible[idx]
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SyncMsg:
		m.reload()
		return m, nil

	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.Err != nil

		if msg.Err != nil {
			m.status = friendly(msg.Err)
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-22, 5))

		return m, nil
	}

	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeForm:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m DashboardModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			m.search.Blur()
			m.mode = modeBrowse
			m.table.Focus()
			m.refilter()

			return m, nil
		case tea.KeyEnter:
			m.search.Blur()
			m.mode = modeBrowse
			m.table.Focus()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refilter()

	return m, cmd
}

func (m DashboardModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "o":
		m.services.Session.SignOut()
		return m, nil
	case "tab":
		if m.focus == focusTransactions {
			m.focus = focusAccounts
			m.table.Blur()
		} else {
			m.focus = focusTransactions
			m.table.Focus()
		}

		return m, nil
	case "/":
		m.mode = modeSearch
		m.table.Blur()

		return m, m.search.Focus()
	case "t":
		m.typeIdx = (m.typeIdx + 1) % len(typeFilters)
		m.refilter()

		return m, nil
	case "b":
		m.breakdown = !m.breakdown
		return m, nil
	case "a":
		return m.openEntryForm()
	case "l":
		return m.openLinkForm()
	case "e":
		return m, func() tea.Msg { return OpenExportMsg{} }
	}

	if m.focus == focusAccounts {
		return m.updateAccountKeys(keyMsg)
	}

	if keyMsg.String() == "x" {
		if t := m.selectedTransaction(); t != nil {
			return m.openConfirm(actionDelete, t.ID, "Delete transaction?",
				fmt.Sprintf("%s %s. Any bank balance change is reversed.", t.Description, FormatSigned(t)))
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) updateAccountKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.accCursor > 0 {
			m.accCursor--
		}

		return m, nil
	case "down", "j":
		if m.accCursor < len(m.accounts)-1 {
			m.accCursor++
		}

		return m, nil
	}

	acc := m.selectedAccount()
	if acc == nil {
		return m, nil
	}

	switch msg.String() {
	case "+", "=", "-":
		if acc.Frozen() {
			return m, status("", ledger.ErrAccountFrozen)
		}
	}

	switch msg.String() {
	case "+", "=":
		return m.openAmountForm(actionDeposit, acc, "Deposit into "+acc.BankName+" (₹)")
	case "-":
		return m.openAmountForm(actionWithdraw, acc, "Withdraw from "+acc.BankName+" (₹)")
	case "f":
		return m, m.toggleFreezeCmd(acc.ID)
	case "u":
		return m.openConfirm(actionUnlink, acc.ID, "Unlink "+acc.BankName+"?",
			"The card is removed. Transactions already recorded stay in the ledger.")
	case "i":
		if m.owner != nil && m.owner.Demo {
			return m, status("", errDemo)
		}

		return m, func() tea.Msg { return OpenImportMsg{Account: acc} }
	}

	return m, nil
}

func (m DashboardModel) openEntryForm() (tea.Model, tea.Cmd) {
	m.entry = &entryInput{
		typ:    string(transaction.TypeExpense),
		method: string(transaction.PaymentCash),
	}

	if acc := m.selectedAccount(); acc != nil {
		m.entry.accountID = acc.ID.String()
	}

	m.form = newEntryForm(m.entry, m.accounts)

	return m.enterForm(actionRecord, uuid.Nil)
}

func (m DashboardModel) openLinkForm() (tea.Model, tea.Cmd) {
	m.link = &linkInput{bankID: bank.Supported()[0].ID}
	m.form = newLinkForm(m.link)

	return m.enterForm(actionLink, uuid.Nil)
}

func (m DashboardModel) openAmountForm(action dashAction, acc *account.Account, title string) (tea.Model, tea.Cmd) {
	m.amount = &amountInput{}
	m.form = newAmountForm(m.amount, title)

	return m.enterForm(action, acc.ID)
}

func (m DashboardModel) openConfirm(action dashAction, target uuid.UUID, title, description string) (tea.Model, tea.Cmd) {
	m.confirm = &confirmInput{}
	m.form = newConfirmForm(m.confirm, title, description)

	return m.enterForm(action, target)
}

func (m DashboardModel) enterForm(action dashAction, target uuid.UUID) (tea.Model, tea.Cmd) {
	m.action = action
	m.target = target
	m.mode = modeForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m *DashboardModel) leaveForm() {
	m.form = nil
	m.mode = modeBrowse

	if m.focus == focusTransactions {
		m.table.Focus()
	}
}

func (m DashboardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.leaveForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.leaveForm()
		return m, nil
	case huh.StateCompleted:
		action, target := m.action, m.target
		m.leaveForm()

		return m, m.submitCmd(action, target)
	}

	return m, cmd
}

func (m DashboardModel) submitCmd(action dashAction, target uuid.UUID) tea.Cmd {
	switch action {
	case actionRecord:
		return m.recordCmd(*m.entry)
	case actionLink:
		return m.linkCmd(*m.link)
	case actionDeposit, actionWithdraw:
		return m.adjustCmd(action, target, m.amount.amount)
	case actionUnlink:
		if m.confirm.ok {
			return m.unlinkCmd(target)
		}
	case actionDelete:
		if m.confirm.ok {
			return m.deleteCmd(target)
		}
	}

	return nil
}

// write runs fn against the owner's ledger. Demo sessions have no ledger, so
// the write is refused with a notice.
func (m DashboardModel) write(op string, fn func(ctx context.Context, l *ledger.Ledger) (string, error)) tea.Cmd {
	l := m.services.ledgerFor(m.owner)

	return func() tea.Msg {
		if l == nil {
			return StatusMsg{Err: errDemo}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		text, err := fn(ctx, l)
		if err != nil {
			if !isValidation(err) {
				slog.Error("ledger write failed", "op", op, "error", err)
			}

			return StatusMsg{Err: err}
		}

		return StatusMsg{Text: text}
	}
}

func isValidation(err error) bool {
	for _, target := range []error{
		ledger.ErrInvalidAmount,
		ledger.ErrInsufficientFunds,
		ledger.ErrAccountFrozen,
		ledger.ErrUnknownBank,
		ledger.ErrInvalidAccountNumber,
		ledger.ErrInvalidTransaction,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func (m DashboardModel) recordCmd(in entryInput) tea.Cmd {
	categorizer := m.services.Categorizer

	return m.write("record", func(ctx context.Context, l *ledger.Ledger) (string, error) {
		p, err := in.params()
		if err != nil {
			return "", err
		}

		if p.Category == autoCategory {
			if p.Category, err = categorizer.Categorize(ctx, l.Owner().UserID(), p.Description, p.Type); err != nil {
				return "", err
			}
		}

		if _, err := l.Record(ctx, p); err != nil {
			return "", err
		}

		return fmt.Sprintf("Recorded %s (%s)", p.Description, p.Category), nil
	})
}

func (m DashboardModel) linkCmd(in linkInput) tea.Cmd {
	return m.write("link", func(ctx context.Context, l *ledger.Ledger) (string, error) {
		acc, err := l.LinkAccount(ctx, ledger.LinkParams{
			BankID:         in.bankID,
			AccountNumber:  in.number,
			OpeningBalance: ledger.ParseOpeningBalance(in.opening),
		})
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("Linked %s %s", acc.BankName, acc.AccountNumberMasked), nil
	})
}

func (m DashboardModel) adjustCmd(action dashAction, accountID uuid.UUID, raw string) tea.Cmd {
	return m.write("adjust", func(ctx context.Context, l *ledger.Ledger) (string, error) {
		amount, err := money.ParsePositive(raw)
		if err != nil {
			return "", ledger.ErrInvalidAmount
		}

		adjust, verb := l.Deposit, "Deposited"
		if action == actionWithdraw {
			adjust, verb = l.Withdraw, "Withdrew"
		}

		res, err := adjust(ctx, accountID, amount)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s %s. New balance %s", verb, money.Format(amount), money.Format(res.Account.Balance)), nil
	})
}

func (m DashboardModel) toggleFreezeCmd(accountID uuid.UUID) tea.Cmd {
	return m.write("freeze", func(ctx context.Context, l *ledger.Ledger) (string, error) {
		acc, err := l.ToggleFreeze(ctx, accountID)
		if err != nil {
			return "", err
		}

		if acc.Frozen() {
			return acc.BankName + " frozen", nil
		}

		return acc.BankName + " active again", nil
	})
}

func (m DashboardModel) unlinkCmd(accountID uuid.UUID) tea.Cmd {
	return m.write("unlink", func(ctx context.Context, l *ledger.Ledger) (string, error) {
		if err := l.UnlinkAccount(ctx, accountID); err != nil {
			return "", err
		}

		return "Account unlinked", nil
	})
}

func (m DashboardModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return m.write("delete", func(ctx context.Context, l *ledger.Ledger) (string, error) {
		if _, err := l.Delete(ctx, id); err != nil {
			return "", err
		}

		return "Transaction deleted", nil
	})
}

func (m DashboardModel) View() string {
	sections := []string{m.viewHeader()}

	if m.owner != nil && m.owner.Demo {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 1).
			Render("Demo mode: sample data, changes are not saved. Press o to leave."))
	}

	if m.banner != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Padding(0, 1).
			Render(m.banner))
	}

	sections = append(sections, m.viewSummary(), "", m.viewBody())

	if m.status != "" {
		style := successStyle
		if m.statusErr {
			style = errorStyle
		}

		sections = append(sections, "", style.Render(m.status))
	}

	sections = append(sections, "", faintStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m DashboardModel) viewHeader() string {
	name := "Friend"
	if m.owner != nil {
		name = m.owner.Profile.FirstName()
	}

	return titleStyle.Render("Namaste, "+name) + "  " + faintStyle.Render(m.now().Format("Monday, 02 Jan 2006"))
}

func (m DashboardModel) viewSummary() string {
	s := summary.Compute(m.txs)

	card := func(label, value string, color lipgloss.Color) string {
		return lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Render(faintStyle.Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Foreground(color).Render(value))
	}

	verdictColor := lipgloss.Color("46")
	if !s.Surplus() {
		verdictColor = lipgloss.Color("196")
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Income", money.Format(s.TotalIncome), lipgloss.Color("46")),
		card("Expenses", money.Format(s.TotalExpense), lipgloss.Color("196")),
		card("Net", money.Format(s.Balance), verdictColor),
		card("Savings rate", fmt.Sprintf("%.1f%%", s.SavingsRate), lipgloss.Color("63")),
		card("In the bank", money.Format(account.TotalBalance(m.accounts)), lipgloss.Color("39")),
	)

	verdict := lipgloss.NewStyle().Bold(true).Foreground(verdictColor).Render(s.Verdict())
	detail := faintStyle.Render(fmt.Sprintf("%s · average spend %s", FormatCount(s.Count, "transaction"), money.Format(s.AverageExpense)))

	return lipgloss.JoinVertical(lipgloss.Left, cards, verdict+"  "+detail)
}

func (m DashboardModel) viewBody() string {
	left := m.viewAccounts()

	var right string

	switch {
	case m.mode == modeForm && m.form != nil:
		right = panelStyle.Width(56).Render(m.form.View())
	case m.breakdown:
		right = m.viewBreakdown()
	default:
		right = m.viewTransactions()
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m DashboardModel) viewAccounts() string {
	header := "Accounts"
	if m.focus == focusAccounts {
		header = activeStyle(header)
	}

	lines := []string{header, ""}

	if len(m.accounts) == 0 {
		lines = append(lines, faintStyle.Render("No linked accounts.\nPress l to link one."))
	}

	for i, a := range m.accounts {
		meta := bank.Display(a.BankID)

		card := lipgloss.NewStyle().
			Width(30).
			Padding(0, 1).
			Foreground(lipgloss.Color(meta.TextColor)).
			Background(lipgloss.Color(meta.Color))

		body := fmt.Sprintf("%s\n%s\n%s", meta.Name, a.AccountNumberMasked, money.Format(a.Balance))
		if a.Frozen() {
			body += "  FROZEN"
			card = card.Faint(true)
		}

		if m.focus == focusAccounts && i == m.accCursor {
			card = card.Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("205"))
		} else {
			card = card.Border(lipgloss.HiddenBorder())
		}

		lines = append(lines, card.Render(body))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m DashboardModel) viewTransactions() string {
	header := fmt.Sprintf("Transactions  [t] Type: %s", activeStyle(typeFilters[m.typeIdx].label))

	if m.mode == modeSearch || m.search.Value() != "" {
		header += "  " + m.search.View()
	}

	if len(m.txs) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", faintStyle.Render("No transactions yet. Press a to add one."))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	footer := faintStyle.Render(fmt.Sprintf("showing %d of %s", len(m.visible), FormatCount(len(m.txs), "transaction")))

	return lipgloss.JoinVertical(lipgloss.Left, header, tableView, footer)
}

func (m DashboardModel) viewBreakdown() string {
	column := func(title string, typ transaction.Type) string {
		rows := []string{lipgloss.NewStyle().Bold(true).Render(title)}

		totals := summary.ByCategory(m.txs, typ)
		if len(totals) == 0 {
			rows = append(rows, faintStyle.Render("nothing yet"))
		}

		for _, c := range totals {
			rows = append(rows, fmt.Sprintf("%-18s %14s  %s", c.Category, money.Format(c.Total), faintStyle.Render(fmt.Sprintf("×%d", c.Count))))
		}

		return panelStyle.Render(strings.Join(rows, "\n"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		column("Income by category", transaction.TypeIncome),
		column("Spending by category", transaction.TypeExpense),
	)
}
