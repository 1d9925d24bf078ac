package loan

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/loan"
)

type loanResponse struct {
	ID                 uuid.UUID   `json:"id"`
	ProductID          uuid.UUID   `json:"product_id"`
	Borrower           string      `json:"borrower"`
	Origin             loan.Origin `json:"origin"`
	Status             loan.Status `json:"status"`
	OutstandingBoxes   int         `json:"outstanding_boxes"`
	OutstandingSachets int         `json:"outstanding_sachets"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          *time.Time  `json:"updated_at,omitempty"`
}

func toResponse(l *loan.Loan) loanResponse {
	return loanResponse{
		ID:                 l.ID,
		ProductID:          l.ProductID,
		Borrower:           l.Borrower,
		Origin:             l.Origin,
		Status:             l.Status,
		OutstandingBoxes:   l.OutstandingBoxes,
		OutstandingSachets: l.OutstandingSachets,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func toResponseList(loans []*loan.Loan) []loanResponse {
	resp := make([]loanResponse, len(loans))
	for i, l := range loans {
		resp[i] = toResponse(l)
	}

	return resp
}

type balanceResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Boxes     int       `json:"boxes"`
	Sachets   int       `json:"sachets"`
}

func toBalanceResponse(balances map[uuid.UUID]loan.Balance) []balanceResponse {
	resp := make([]balanceResponse, 0, len(balances))
	for id, b := range balances {
		resp = append(resp, balanceResponse{ProductID: id, Boxes: b.Boxes, Sachets: b.Sachets})
	}

	sort.Slice(resp, func(i, j int) bool {
		return resp[i].ProductID.String() < resp[j].ProductID.String()
	})

	return resp
}
