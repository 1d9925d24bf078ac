package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/loan"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
)

// StockModel shows the catalog with live stock, cost and outstanding loans
// per product.
type StockModel struct {
	CommonModel
	productService *product.Service
	loanService    *loan.Service

	table    table.Model
	products []*product.Product
	balances map[uuid.UUID]loan.Balance

	loading bool
	err     error
}

func NewStockModel(productSvc *product.Service, loanSvc *loan.Service) StockModel {
	columns := []table.Column{
		{Title: "Product", Width: 30},
		{Title: "Boxes", Width: 7},
		{Title: "Sachets", Width: 8},
		{Title: "Avg Cost", Width: 10},
		{Title: "Price", Width: 10},
		{Title: "On Loan", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return StockModel{
		productService: productSvc,
		loanService:    loanSvc,
		table:          t,
		loading:        true,
	}
}

func (m StockModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m StockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStockMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.products = msg.products
		m.balances = msg.balances
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 8)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m StockModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading stock...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	help := lipgloss.NewStyle().Faint(true).Render("Esc: back | r: refresh")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, tableView, help),
	)
}

func (m *StockModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.products))
	for _, p := range m.products {
		onLoan := ""
		if b, ok := m.balances[p.ID]; ok && !b.IsZero() {
			onLoan = fmt.Sprintf("%dc/%ds", b.Boxes, b.Sachets)
		}

		rows = append(rows, table.Row{
			p.Name,
			strconv.Itoa(p.StockBoxes),
			strconv.Itoa(p.StockSachets),
			FormatMoney(p.WeightedAverageCost),
			FormatMoney(p.ListPrice),
			onLoan,
		})
	}

	m.table.SetRows(rows)
}

type loadStockMsg struct {
	products []*product.Product
	balances map[uuid.UUID]loan.Balance
	err      error
}

func (m StockModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		products, err := m.productService.List(ctx)
		if err != nil {
			return loadStockMsg{err: err}
		}

		balances, err := m.loanService.BalancesByProduct(ctx)
		if err != nil {
			return loadStockMsg{err: err}
		}

		return loadStockMsg{products: products, balances: balances}
	}
}
