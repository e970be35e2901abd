package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/aapnaincom/cmd/tui/internal/view"
	accStore "github.com/MrJamesThe3rd/aapnaincom/internal/account/store"
	"github.com/MrJamesThe3rd/aapnaincom/internal/auth"
	authStore "github.com/MrJamesThe3rd/aapnaincom/internal/auth/store"
	"github.com/MrJamesThe3rd/aapnaincom/internal/categorize"
	catStore "github.com/MrJamesThe3rd/aapnaincom/internal/categorize/store"
	"github.com/MrJamesThe3rd/aapnaincom/internal/config"
	"github.com/MrJamesThe3rd/aapnaincom/internal/database"
	"github.com/MrJamesThe3rd/aapnaincom/internal/datasync"
	"github.com/MrJamesThe3rd/aapnaincom/internal/export"
	ledgerStore "github.com/MrJamesThe3rd/aapnaincom/internal/ledger/store"
	"github.com/MrJamesThe3rd/aapnaincom/internal/session"
	"github.com/MrJamesThe3rd/aapnaincom/internal/statement"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
	txStore "github.com/MrJamesThe3rd/aapnaincom/internal/transaction/store"
)

type View int

const (
	ViewLogin     View = 0
	ViewDashboard View = 1
	ViewImport    View = 2
	ViewExport    View = 3
)

type model struct {
	services  view.Services
	appName   string
	exportDir string

	currentView View
	size        tea.WindowSizeMsg

	loginView     view.LoginModel
	dashboardView view.DashboardModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

func initialModel(services view.Services, cfg *config.Config) model {
	return model{
		services:    services,
		appName:     cfg.App.Name,
		exportDir:   cfg.App.ExportDir,
		currentView: ViewLogin,
		loginView:   view.NewLoginModel(services, cfg.App.Name),
	}
}

// waitForSync turns the next sync layer change into a message.
func waitForSync(layer *datasync.Layer) tea.Cmd {
	return func() tea.Msg {
		<-layer.Updates()
		return view.SyncMsg{}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.loginView.Init(), waitForSync(m.services.Sync))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.size = msg
	case view.SyncMsg:
		return m.onSync()
	case view.BackMsg:
		m.currentView = ViewDashboard
		return m, nil
	case view.OpenImportMsg:
		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.services, msg.Account)

		return m, m.importView.Init()
	case view.OpenExportMsg:
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.services, m.exportDir)

		return m, m.exportView.Init()
	case view.StatusMsg:
		// Outcomes always land on the dashboard, whichever screen sent them.
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)

		return m, cmd
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

// onSync follows the session: no owner means the login screen, a new owner
// means a fresh dashboard, anything else refreshes the dashboard in place.
func (m model) onSync() (tea.Model, tea.Cmd) {
	next := waitForSync(m.services.Sync)
	owner := m.services.Sync.Owner()

	switch {
	case owner == nil && m.currentView != ViewLogin:
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.services, m.appName)

		return m, tea.Batch(next, m.loginView.Init())

	case owner != nil && m.currentView == ViewLogin:
		m.currentView = ViewDashboard
		m.dashboardView = view.NewDashboardModel(m.services)

		if m.size.Width > 0 {
			newModel, _ := m.dashboardView.Update(m.size)
			m.dashboardView = newModel.(view.DashboardModel)
		}

		return m, next
	}

	newModel, cmd := m.dashboardView.Update(view.SyncMsg{})
	m.dashboardView = newModel.(view.DashboardModel)

	return m, tea.Batch(next, cmd)
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the dashboard, so logs go to a file.
	logFile, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "path", cfg.App.LogFile, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	hub := datasync.NewHub()
	go datasync.NewListener(cfg.ConnectionString(), cfg.Sync.Channel, hub).Run(ctx)

	var (
		transactions = txStore.New(db)
		accounts     = accStore.New(db)
		categorizer  = categorize.NewService(catStore.New(db))
	)

	manager := session.NewManager()
	layer := datasync.NewLayer(hub, datasync.Join(transactions, accounts))
	defer layer.Close()

	states, unsubscribe := manager.Subscribe()
	defer unsubscribe()

	go layer.Follow(ctx, states)

	services := view.Services{
		Auth: auth.NewService(authStore.New(db), auth.Config{
			JWTSecret:         cfg.Auth.JWTSecret,
			TokenTTL:          cfg.Auth.TokenTTL,
			FederatedSecret:   cfg.Auth.FederatedSecret,
			AuthorizedDomains: cfg.Auth.AuthorizedDomains,
		}),
		Session:     manager,
		Sync:        layer,
		Ledger:      ledgerStore.New(db, cfg.Sync.Channel),
		Categorizer: categorizer,
		Statements:  statement.NewService(categorizer),
		Export:      export.NewService(transaction.NewService(transactions)),
	}

	p := tea.NewProgram(initialModel(services, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
