package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
)

type productResponse struct {
	ID                  uuid.UUID       `json:"id"`
	Name                string          `json:"name"`
	StockBoxes          int             `json:"stock_boxes"`
	StockSachets        int             `json:"stock_sachets"`
	SachetsPerBox       int             `json:"sachets_per_box"`
	WeightedAverageCost decimal.Decimal `json:"weighted_average_cost"`
	ListPrice           decimal.Decimal `json:"list_price"`
	RewardPoints        int             `json:"reward_points"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(p *product.Product) productResponse {
	return productResponse{
		ID:                  p.ID,
		Name:                p.Name,
		StockBoxes:          p.StockBoxes,
		StockSachets:        p.StockSachets,
		SachetsPerBox:       p.SachetsPerBox,
		WeightedAverageCost: p.WeightedAverageCost,
		ListPrice:           p.ListPrice,
		RewardPoints:        p.RewardPoints,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func toResponseList(products []*product.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toResponse(p)
	}

	return resp
}
