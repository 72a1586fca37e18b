package http

import (
	"time"

	"github.com/nekogravitycat/party-booking-backend/internal/maintenance"
)

type BlockResponse struct {
	ID        string    `json:"id"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Reason    string    `json:"reason"`
	CreatedBy *string   `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewBlockResponse(b *maintenance.Block) BlockResponse {
	return BlockResponse{
		ID:        b.ID,
		StartAt:   b.StartAt,
		EndAt:     b.EndAt,
		Reason:    b.Reason,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt,
	}
}

type CreateBlockBody struct {
	StartAt time.Time `json:"startAt" binding:"required"`
	EndAt   time.Time `json:"endAt" binding:"required"`
	Reason  string    `json:"reason" binding:"required"`
}
