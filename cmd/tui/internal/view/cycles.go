package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/cycle"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/report"
)

type cycleState int

const (
	cycleStateBrowse cycleState = iota
	cycleStateClose
)

// CycleModel shows closed cycles plus the running totals of the open window,
// and closes the window into a new cycle.
type CycleModel struct {
	CommonModel
	cycleService  *cycle.Service
	reportService *report.Service

	state  cycleState
	table  table.Model
	cycles []*cycle.BusinessCycle
	window *report.Summary
	form   *huh.Form

	loading bool
	err     error
	status  string

	formName  string
	formNotes string
}

func NewCycleModel(cycleSvc *cycle.Service, reportSvc *report.Service) CycleModel {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: 22},
		{Title: "Period", Width: 24},
		{Title: "Revenue", Width: 11},
		{Title: "Net Profit", Width: 11},
		{Title: "ROI", Width: 8},
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

	return CycleModel{
		cycleService:  cycleSvc,
		reportService: reportSvc,
		table:         t,
		loading:       true,
	}
}

func (m CycleModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CycleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCyclesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.cycles = msg.cycles
		m.window = msg.window
		m.refreshTable()

		return m, nil

	case cycleClosedMsg:
		m.state = cycleStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Close failed: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Closed cycle #%d %q.", msg.cycle.Number, msg.cycle.Name)
		m.loading = true

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case cycleStateBrowse:
		return m.updateBrowse(msg)
	case cycleStateClose:
		return m.updateClose(msg)
	}

	return m, nil
}

func (m CycleModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "c":
			return m.enterCloseMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CycleModel) enterCloseMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formNotes = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Cycle name").
				Placeholder("C2026-08").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewText().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = cycleStateClose
	m.table.Blur()

	return m, m.form.Init()
}

func (m CycleModel) updateClose(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = cycleStateBrowse
			m.form = nil
			m.table.Focus()

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

	return m, m.closeCmd()
}

func (m CycleModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading cycles...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := "Open window: no sales yet"
	if m.window != nil && m.window.SalesCount > 0 {
		header = fmt.Sprintf("Open window: revenue %s | profit %s | %d sales",
			FormatMoney(m.window.Revenue), FormatMoney(m.window.Profit), m.window.SalesCount)

		if m.window.UnmatchedSales > 0 {
			header += fmt.Sprintf(" | %d without cost data", m.window.UnmatchedSales)
		}
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		lipgloss.NewStyle().Faint(true).Render("Esc: back | c: close cycle | r: refresh"),
	)

	if m.state == cycleStateClose && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Close Business Cycle\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CycleModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.cycles))
	for _, c := range m.cycles {
		rows = append(rows, table.Row{
			strconv.Itoa(c.Number),
			c.Name,
			fmt.Sprintf("%s / %s", FormatDate(c.StartDate), FormatDate(c.EndDate)),
			FormatMoney(c.Aggregates.Revenue),
			FormatMoney(c.Aggregates.NetProfit),
			c.Aggregates.ROI.StringFixed(2),
		})
	}

	m.table.SetRows(rows)
}

type loadCyclesMsg struct {
	cycles []*cycle.BusinessCycle
	window *report.Summary
	err    error
}

func (m CycleModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cycles, err := m.cycleService.List(ctx)
		if err != nil {
			return loadCyclesMsg{err: err}
		}

		window, err := m.reportService.CurrentWindowSummary(ctx)
		if err != nil {
			return loadCyclesMsg{err: err}
		}

		return loadCyclesMsg{cycles: cycles, window: window}
	}
}

type cycleClosedMsg struct {
	cycle *cycle.BusinessCycle
	err   error
}

func (m CycleModel) closeCmd() tea.Cmd {
	name := m.formName
	notes := m.formNotes

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.cycleService.Close(ctx, cycle.CloseParams{Name: name, Notes: notes})
		return cycleClosedMsg{cycle: c, err: err}
	}
}
