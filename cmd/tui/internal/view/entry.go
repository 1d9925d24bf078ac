package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
)

type entryState int

const (
	entryStateLoading entryState = iota
	entryStateForm
	entryStateSaving
	entryStateDone
)

// EntryModel records one transaction through a form. Every kind goes through
// the same flow; the ledger decides what the entry means for stock, cost and
// loans.
type EntryModel struct {
	CommonModel
	ledgerService  *ledger.Service
	productService *product.Service

	state    entryState
	form     *huh.Form
	products []*product.Product

	err    error
	result *ledger.Result

	formProduct  string
	formKind     string
	formBoxes    string
	formSachets  string
	formAmount   string
	formCampaign string
	formCustomer string
	formOrigin   string
}

func NewEntryModel(ledgerSvc *ledger.Service, productSvc *product.Service) EntryModel {
	return EntryModel{
		ledgerService:  ledgerSvc,
		productService: productSvc,
		state:          entryStateLoading,
	}
}

func (m EntryModel) Init() tea.Cmd {
	return m.loadProductsCmd()
}

func (m EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProductsMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = entryStateDone

			return m, nil
		}

		m.products = msg.products
		m.form = m.buildForm()
		m.state = entryStateForm

		return m, m.form.Init()

	case entrySavedMsg:
		m.err = msg.err
		m.result = msg.result
		m.state = entryStateDone

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == entryStateDone {
			return m, Back
		}
	}

	if m.state != entryStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = entryStateSaving

	return m, m.saveCmd()
}

func (m EntryModel) View() string {
	pad := lipgloss.NewStyle().Padding(2)

	switch m.state {
	case entryStateLoading:
		return pad.Render("Loading products...")
	case entryStateSaving:
		return pad.Render("Recording...")
	case entryStateDone:
		if m.err != nil {
			return pad.Render(fmt.Sprintf("Error: %v\n\nPress any key to return.", m.err))
		}

		return pad.Render(m.resultText() + "\n\nPress any key to return.")
	}

	return lipgloss.NewStyle().Padding(1).Render(
		"Record Transaction\n\n" + m.form.View(),
	)
}

func (m EntryModel) resultText() string {
	var b strings.Builder

	p := m.result.Product
	fmt.Fprintf(&b, "Recorded %s of %s.\n", m.result.Transaction.Kind, p.Name)
	fmt.Fprintf(&b, "Stock now %d boxes, %d sachets; avg cost %s.",
		p.StockBoxes, p.StockSachets, FormatMoney(p.WeightedAverageCost))

	if l := m.result.LoanCreated; l != nil {
		fmt.Fprintf(&b, "\nLoan created for %q: %d boxes, %d sachets outstanding.",
			l.Borrower, l.OutstandingBoxes, l.OutstandingSachets)
	}

	if n := len(m.result.SettledLoans); n > 0 {
		fmt.Fprintf(&b, "\nSettled %d loan(s).", n)
	}

	return b.String()
}

func (m *EntryModel) buildForm() *huh.Form {
	productOptions := make([]huh.Option[string], 0, len(m.products))
	for _, p := range m.products {
		productOptions = append(productOptions, huh.NewOption(p.Name, p.ID.String()))
	}

	kindOptions := []huh.Option[string]{
		huh.NewOption("Purchase", string(ledger.KindPurchase)),
		huh.NewOption("Sale", string(ledger.KindSale)),
		huh.NewOption("Advertising", string(ledger.KindAdvertising)),
		huh.NewOption("Personal Consumption", string(ledger.KindPersonalConsumption)),
		huh.NewOption("Marketing Sample", string(ledger.KindMarketingSample)),
		huh.NewOption("Box Opening", string(ledger.KindBoxOpening)),
		huh.NewOption("Loan", string(ledger.KindLoan)),
		huh.NewOption("Loan Repayment", string(ledger.KindLoanRepayment)),
	}

	originOptions := []huh.Option[string]{
		huh.NewOption("(none)", ""),
		huh.NewOption("Organic", string(ledger.SaleOriginOrganic)),
		huh.NewOption("Recurring", string(ledger.SaleOriginRecurring)),
		huh.NewOption("Referral", string(ledger.SaleOriginReferral)),
	}

	m.formBoxes = "0"
	m.formSachets = "0"
	m.formAmount = "0"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("product").
				Title("Product").
				Options(productOptions...).
				Value(&m.formProduct),

			huh.NewSelect[string]().
				Key("kind").
				Title("Type").
				Options(kindOptions...).
				Value(&m.formKind),

			huh.NewInput().
				Key("boxes").
				Title("Boxes").
				Value(&m.formBoxes).
				Validate(validateInt),

			huh.NewInput().
				Key("sachets").
				Title("Sachets").
				Value(&m.formSachets).
				Validate(validateInt),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("campaign").
				Title("Campaign tag").
				Value(&m.formCampaign),

			huh.NewSelect[string]().
				Key("origin").
				Title("Sale origin").
				Options(originOptions...).
				Value(&m.formOrigin),

			huh.NewInput().
				Key("customer").
				Title("Customer / borrower").
				Value(&m.formCustomer),
		),
	).WithWidth(50).WithShowHelp(false)
}

func validateInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("must be a whole number >= 0")
	}

	return nil
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return fmt.Errorf("must be a number >= 0")
	}

	return nil
}

type loadProductsMsg struct {
	products []*product.Product
	err      error
}

func (m EntryModel) loadProductsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		products, err := m.productService.List(ctx)
		return loadProductsMsg{products: products, err: err}
	}
}

type entrySavedMsg struct {
	result *ledger.Result
	err    error
}

func (m EntryModel) saveCmd() tea.Cmd {
	params, err := m.params()
	if err != nil {
		return func() tea.Msg { return entrySavedMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.ledgerService.Record(ctx, params)
		return entrySavedMsg{result: res, err: err}
	}
}

func (m EntryModel) params() (ledger.RecordParams, error) {
	var p *product.Product

	for _, cand := range m.products {
		if cand.ID.String() == m.formProduct {
			p = cand
			break
		}
	}

	if p == nil {
		return ledger.RecordParams{}, fmt.Errorf("no product selected")
	}

	boxes, _ := strconv.Atoi(strings.TrimSpace(m.formBoxes))
	sachets, _ := strconv.Atoi(strings.TrimSpace(m.formSachets))

	amount, err := decimal.NewFromString(strings.TrimSpace(m.formAmount))
	if err != nil {
		return ledger.RecordParams{}, fmt.Errorf("invalid amount: %w", err)
	}

	kind := ledger.Kind(m.formKind)

	params := ledger.RecordParams{
		ProductID:       p.ID,
		Kind:            kind,
		QuantityBoxes:   boxes,
		QuantitySachets: sachets,
		TotalAmount:     amount,
		CampaignTag:     m.formCampaign,
		SaleOrigin:      ledger.SaleOrigin(m.formOrigin),
		Date:            time.Now(),
	}

	switch kind {
	case ledger.KindSale:
		params.CustomerRef = m.formCustomer
	case ledger.KindLoan, ledger.KindLoanRepayment:
		params.Borrower = m.formCustomer
	}

	return params, nil
}
