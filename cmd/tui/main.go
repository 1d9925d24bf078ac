package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/daniel1743/claculadorafuxion-sub001/cmd/tui/internal/view"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/config"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/cycle"
	cycleStore "github.com/daniel1743/claculadorafuxion-sub001/internal/cycle/store"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/database"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/importer"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/importer/legacy"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	ledgerStore "github.com/daniel1743/claculadorafuxion-sub001/internal/ledger/store"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/loan"
	loanStore "github.com/daniel1743/claculadorafuxion-sub001/internal/loan/store"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
	productStore "github.com/daniel1743/claculadorafuxion-sub001/internal/product/store"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/report"
)

type model struct {
	productService *product.Service
	ledgerService  *ledger.Service
	loanService    *loan.Service
	cycleService   *cycle.Service
	reportService  *report.Service
	importService  *importer.Service

	currentView View

	stockView  view.StockModel
	entryView  view.EntryModel
	loanView   view.LoanModel
	cycleView  view.CycleModel
	importView view.ImportModel
}

type View int

const (
	ViewMenu   View = 0
	ViewStock  View = 1
	ViewEntry  View = 2
	ViewLoans  View = 3
	ViewCycles View = 4
	ViewImport View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	productSvc := product.NewService(productStore.New(db))
	ledgerSvc := ledger.NewService(ledgerStore.New(db))
	loanSvc := loan.NewService(loanStore.New(db))
	cycleSvc := cycle.NewService(cycleStore.New(db), ledgerSvc, productSvc, loanSvc)
	reportSvc := report.NewService(ledgerSvc, productSvc, cycleSvc)
	importSvc := importer.NewService(legacy.New(), ledgerSvc, productSvc)

	return model{
		productService: productSvc,
		ledgerService:  ledgerSvc,
		loanService:    loanSvc,
		cycleService:   cycleSvc,
		reportService:  reportSvc,
		importService:  importSvc,
		currentView:    ViewMenu,
		stockView:      view.NewStockModel(productSvc, loanSvc),
		entryView:      view.NewEntryModel(ledgerSvc, productSvc),
		loanView:       view.NewLoanModel(loanSvc, productSvc),
		cycleView:      view.NewCycleModel(cycleSvc, reportSvc),
		importView:     view.NewImportModel(importSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewStock
				m.stockView = view.NewStockModel(m.productService, m.loanService)

				return m, m.stockView.Init()
			case "2":
				m.currentView = ViewEntry
				m.entryView = view.NewEntryModel(m.ledgerService, m.productService)

				return m, m.entryView.Init()
			case "3":
				m.currentView = ViewLoans
				m.loanView = view.NewLoanModel(m.loanService, m.productService)

				return m, m.loanView.Init()
			case "4":
				m.currentView = ViewCycles
				m.cycleView = view.NewCycleModel(m.cycleService, m.reportService)

				return m, m.cycleView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewStock:
		var newModel tea.Model
		newModel, cmd = m.stockView.Update(msg)
		m.stockView = newModel.(view.StockModel)
	case ViewEntry:
		var newModel tea.Model
		newModel, cmd = m.entryView.Update(msg)
		m.entryView = newModel.(view.EntryModel)
	case ViewLoans:
		var newModel tea.Model
		newModel, cmd = m.loanView.Update(msg)
		m.loanView = newModel.(view.LoanModel)
	case ViewCycles:
		var newModel tea.Model
		newModel, cmd = m.cycleView.Update(msg)
		m.cycleView = newModel.(view.CycleModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"FuXion Ledger\n\n" +
				"1. Stock Overview\n" +
				"2. Record Transaction\n" +
				"3. Loans\n" +
				"4. Business Cycles\n" +
				"5. Import Legacy CSV\n\n" +
				"q. Quit",
		)
	case ViewStock:
		return m.stockView.View()
	case ViewEntry:
		return m.entryView.View()
	case ViewLoans:
		return m.loanView.View()
	case ViewCycles:
		return m.cycleView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
