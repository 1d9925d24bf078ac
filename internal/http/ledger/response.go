package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/loan"
)

type transactionResponse struct {
	ID              uuid.UUID         `json:"id"`
	ProductID       uuid.UUID         `json:"product_id"`
	ProductName     string            `json:"product_name"`
	Kind            ledger.Kind       `json:"kind"`
	QuantityBoxes   int               `json:"quantity_boxes"`
	QuantitySachets int               `json:"quantity_sachets"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	UnitCostAtEntry *decimal.Decimal  `json:"unit_cost_at_entry,omitempty"`
	GiftValue       *decimal.Decimal  `json:"gift_value,omitempty"`
	CampaignTag     string            `json:"campaign_tag,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	SaleOrigin      ledger.SaleOrigin `json:"sale_origin,omitempty"`
	CustomerRef     string            `json:"customer_ref,omitempty"`
	ReferrerRef     string            `json:"referrer_ref,omitempty"`
	Borrower        string            `json:"borrower,omitempty"`
	Date            time.Time         `json:"date"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       *time.Time        `json:"updated_at,omitempty"`
}

type loanResponse struct {
	ID                 uuid.UUID   `json:"id"`
	ProductID          uuid.UUID   `json:"product_id"`
	Borrower           string      `json:"borrower"`
	Origin             loan.Origin `json:"origin"`
	Status             loan.Status `json:"status"`
	OutstandingBoxes   int         `json:"outstanding_boxes"`
	OutstandingSachets int         `json:"outstanding_sachets"`
}

// resultResponse reports one applied command as a whole: the transaction
// plus the loan it created or the loans a repayment settled.
type resultResponse struct {
	Transaction  transactionResponse `json:"transaction"`
	StockBoxes   int                 `json:"stock_boxes"`
	StockSachets int                 `json:"stock_sachets"`
	LoanCreated  *loanResponse       `json:"loan_created,omitempty"`
	SettledLoans []loanResponse      `json:"settled_loans,omitempty"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:              tx.ID,
		ProductID:       tx.ProductID,
		ProductName:     tx.ProductName,
		Kind:            tx.Kind,
		QuantityBoxes:   tx.QuantityBoxes,
		QuantitySachets: tx.QuantitySachets,
		TotalAmount:     tx.TotalAmount,
		UnitCostAtEntry: tx.UnitCostAtEntry,
		GiftValue:       tx.GiftValue,
		CampaignTag:     tx.CampaignTag,
		Notes:           tx.Notes,
		SaleOrigin:      tx.SaleOrigin,
		CustomerRef:     tx.CustomerRef,
		ReferrerRef:     tx.ReferrerRef,
		Borrower:        tx.Borrower,
		Date:            tx.Date,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func toLoanResponse(l *loan.Loan) loanResponse {
	return loanResponse{
		ID:                 l.ID,
		ProductID:          l.ProductID,
		Borrower:           l.Borrower,
		Origin:             l.Origin,
		Status:             l.Status,
		OutstandingBoxes:   l.OutstandingBoxes,
		OutstandingSachets: l.OutstandingSachets,
	}
}

func toResultResponse(res *ledger.Result) resultResponse {
	resp := resultResponse{
		Transaction:  toResponse(res.Transaction),
		StockBoxes:   res.Product.StockBoxes,
		StockSachets: res.Product.StockSachets,
	}

	if res.LoanCreated != nil {
		lr := toLoanResponse(res.LoanCreated)
		resp.LoanCreated = &lr
	}

	for _, l := range res.SettledLoans {
		resp.SettledLoans = append(resp.SettledLoans, toLoanResponse(l))
	}

	return resp
}
