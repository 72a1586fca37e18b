package maintenance

import (
	"context"
	"strings"
	"time"

	"github.com/nekogravitycat/party-booking-backend/internal/availability"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/response"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Block, error)
	GetByID(ctx context.Context, id string) (*Block, error)
	List(ctx context.Context, filter Filter) ([]*Block, int, error)
	Delete(ctx context.Context, id string) error

	ListOverlapping(ctx context.Context, from, to time.Time) ([]availability.MaintenanceBlock, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Block, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	if !req.EndAt.After(req.StartAt) {
		return nil, ErrInvalidTimeRange
	}

	b := &Block{
		StartAt: req.StartAt.UTC(),
		EndAt:   req.EndAt.UTC(),
		Reason:  reason,
	}
	if req.CreatedBy != "" {
		b.CreatedBy = &req.CreatedBy
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Block, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Block, int, error) {
	filter.Page, filter.PageSize = response.NormalizePage(filter.Page, filter.PageSize)
	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return nil, 0, ErrInvalidTimeRange
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListOverlapping(ctx context.Context, from, to time.Time) ([]availability.MaintenanceBlock, error) {
	return s.repo.ListOverlapping(ctx, from, to)
}
