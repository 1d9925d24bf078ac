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

// LoanModel lists loans. "a" toggles between active-only and full history.
type LoanModel struct {
	CommonModel
	loanService    *loan.Service
	productService *product.Service

	table      table.Model
	loans      []*loan.Loan
	names      map[uuid.UUID]string
	activeOnly bool

	loading bool
	err     error
}

func NewLoanModel(loanSvc *loan.Service, productSvc *product.Service) LoanModel {
	columns := []table.Column{
		{Title: "Product", Width: 28},
		{Title: "Borrower", Width: 20},
		{Title: "Origin", Width: 9},
		{Title: "Status", Width: 8},
		{Title: "Boxes", Width: 6},
		{Title: "Sachets", Width: 8},
		{Title: "Since", Width: 12},
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

	return LoanModel{
		loanService:    loanSvc,
		productService: productSvc,
		table:          t,
		activeOnly:     true,
		loading:        true,
	}
}

func (m LoanModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LoanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadLoansMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.loans = msg.loans
		m.names = msg.names
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 8)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "a":
			m.activeOnly = !m.activeOnly
			m.loading = true

			return m, m.loadCmd()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LoanModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading loans...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	scope := "active"
	if !m.activeOnly {
		scope = "all"
	}

	header := fmt.Sprintf("Loans (%s)", scope)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	help := lipgloss.NewStyle().Faint(true).Render("Esc: back | a: toggle active/all | r: refresh")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			tableView,
			help,
		),
	)
}

func (m *LoanModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.loans))
	for _, l := range m.loans {
		name := m.names[l.ProductID]
		if name == "" {
			name = l.ProductID.String()
		}

		rows = append(rows, table.Row{
			name,
			l.Borrower,
			string(l.Origin),
			string(l.Status),
			strconv.Itoa(l.OutstandingBoxes),
			strconv.Itoa(l.OutstandingSachets),
			FormatDate(l.CreatedAt),
		})
	}

	m.table.SetRows(rows)
}

type loadLoansMsg struct {
	loans []*loan.Loan
	names map[uuid.UUID]string
	err   error
}

func (m LoanModel) loadCmd() tea.Cmd {
	activeOnly := m.activeOnly

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		filter := loan.ListFilter{}
		if activeOnly {
			status := loan.StatusActive
			filter.Status = &status
		}

		loans, err := m.loanService.List(ctx, filter)
		if err != nil {
			return loadLoansMsg{err: err}
		}

		products, err := m.productService.List(ctx)
		if err != nil {
			return loadLoansMsg{err: err}
		}

		names := make(map[uuid.UUID]string, len(products))
		for _, p := range products {
			names[p.ID] = p.Name
		}

		return loadLoansMsg{loans: loans, names: names}
	}
}
