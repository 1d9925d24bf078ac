package view

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/importer"
)

type importState int

const (
	importStateForm importState = iota
	importStateRunning
	importStateDone
)

// ImportModel replays a legacy dashboard CSV export from disk.
type ImportModel struct {
	CommonModel
	importService *importer.Service

	state importState
	form  *huh.Form

	err    error
	result *importer.ImportResult

	formPath string
}

func NewImportModel(importSvc *importer.Service) ImportModel {
	m := ImportModel{importService: importSvc}
	m.form = m.buildForm()

	return m
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case importDoneMsg:
		m.err = msg.err
		m.result = msg.result
		m.state = importStateDone

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == importStateDone {
			return m, Back
		}
	}

	if m.state != importStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateRunning

	return m, m.runCmd()
}

func (m ImportModel) View() string {
	pad := lipgloss.NewStyle().Padding(2)

	switch m.state {
	case importStateRunning:
		return pad.Render("Importing...")
	case importStateDone:
		if m.err != nil {
			return pad.Render(fmt.Sprintf("Import failed: %v\n\nPress any key to return.", m.err))
		}

		return pad.Render(m.resultText() + "\n\nPress any key to return.")
	}

	return lipgloss.NewStyle().Padding(1).Render(
		"Import Legacy CSV\n\n" + m.form.View(),
	)
}

func (m ImportModel) resultText() string {
	var b strings.Builder

	if n := len(m.result.Conflicts); n > 0 {
		fmt.Fprintf(&b, "Nothing imported: %d row(s) already exist in the ledger.", n)

		limit := n
		if limit > 5 {
			limit = 5
		}

		for _, c := range m.result.Conflicts[:limit] {
			fmt.Fprintf(&b, "\n  %s %s %q", FormatDate(c.Incoming.Date), c.Incoming.Kind, c.Incoming.ProductName)
		}

		return b.String()
	}

	fmt.Fprintf(&b, "Imported %d transaction(s).", len(m.result.Applied))

	if n := len(m.result.CreatedProducts); n > 0 {
		fmt.Fprintf(&b, "\nCreated %d product(s): %s", n, strings.Join(m.result.CreatedProducts, ", "))
	}

	return b.String()
}

func (m *ImportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("CSV file path").
				Placeholder("/path/to/export.csv").
				Value(&m.formPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

type importDoneMsg struct {
	result *importer.ImportResult
	err    error
}

func (m ImportModel) runCmd() tea.Cmd {
	path := strings.TrimSpace(m.formPath)

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		defer f.Close()

		rows, err := m.importService.Parse(importer.SourceLegacy, f)
		if err != nil {
			return importDoneMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.importService.ImportBatch(ctx, rows)
		return importDoneMsg{result: result, err: err}
	}
}
