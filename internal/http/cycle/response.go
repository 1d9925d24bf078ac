package cycle

import (
	"time"

	"github.com/google/uuid"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/cycle"
)

type cycleResponse struct {
	ID     uuid.UUID `json:"id"`
	Number int       `json:"number"`
	Name   string    `json:"name"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	ClosedAt  time.Time `json:"closed_at"`
	Notes     string    `json:"notes,omitempty"`

	Aggregates cycle.Aggregates `json:"aggregates"`
	VsPrevious *cycle.Deltas    `json:"vs_previous,omitempty"`
}

func toResponse(c *cycle.BusinessCycle) cycleResponse {
	return cycleResponse{
		ID:         c.ID,
		Number:     c.Number,
		Name:       c.Name,
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		ClosedAt:   c.ClosedAt,
		Notes:      c.Notes,
		Aggregates: c.Aggregates,
		VsPrevious: c.VsPrevious,
	}
}

func toResponseList(cycles []*cycle.BusinessCycle) []cycleResponse {
	resp := make([]cycleResponse, len(cycles))
	for i, c := range cycles {
		resp[i] = toResponse(c)
	}

	return resp
}
