package cycle

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("cycle not found")
	ErrEmptyName        = errors.New("cycle name is required")
	ErrInvalidDateRange = errors.New("cycle end date is before start date")
)

// BusinessCycle is a closed accounting period. Its aggregates are computed
// once at close time and stored as literal values; after that only Notes may
// change.
type BusinessCycle struct {
	ID     uuid.UUID
	Number int
	Name   string

	StartDate time.Time
	EndDate   time.Time
	ClosedAt  time.Time
	Notes     string

	Aggregates Aggregates
	// VsPrevious is nil when no earlier cycle existed at close time; "no
	// baseline" is distinct from "0% change".
	VsPrevious *Deltas
}

// Aggregates are the frozen metrics of a cycle.
type Aggregates struct {
	Revenue       decimal.Decimal `json:"revenue"`
	Purchases     decimal.Decimal `json:"purchases"`
	Advertising   decimal.Decimal `json:"advertising"`
	OtherOutflows decimal.Decimal `json:"other_outflows"`
	COGS          decimal.Decimal `json:"cogs"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	Margin        decimal.Decimal `json:"margin"`
	ROI           decimal.Decimal `json:"roi"`

	BoxesSold      int `json:"boxes_sold"`
	SachetsSold    int `json:"sachets_sold"`
	SalesCount     int `json:"sales_count"`
	UnmatchedSales int `json:"unmatched_sales"`

	TopProducts  []ProductShare  `json:"top_products"`
	TopCampaigns []CampaignShare `json:"top_campaigns"`

	Loans     LoanSummary     `json:"loans"`
	Inventory []InventoryLine `json:"inventory"`
}

type ProductShare struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Revenue     decimal.Decimal `json:"revenue"`
	BoxesSold   int             `json:"boxes_sold"`
}

type CampaignShare struct {
	CampaignTag string          `json:"campaign_tag"`
	Spend       decimal.Decimal `json:"spend"`
}

type LoanSummary struct {
	ActiveLoans        int `json:"active_loans"`
	OutstandingBoxes   int `json:"outstanding_boxes"`
	OutstandingSachets int `json:"outstanding_sachets"`
}

// InventoryLine is the stock position of one product at close time.
type InventoryLine struct {
	ProductID           uuid.UUID       `json:"product_id"`
	ProductName         string          `json:"product_name"`
	StockBoxes          int             `json:"stock_boxes"`
	StockSachets        int             `json:"stock_sachets"`
	WeightedAverageCost decimal.Decimal `json:"weighted_average_cost"`
}

// Deltas are percent changes against the previous cycle. A field is nil when
// the previous value was zero and a ratio is meaningless.
type Deltas struct {
	Revenue     *decimal.Decimal `json:"revenue,omitempty"`
	NetProfit   *decimal.Decimal `json:"net_profit,omitempty"`
	Advertising *decimal.Decimal `json:"advertising,omitempty"`
}
