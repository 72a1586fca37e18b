package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/nekogravitycat/party-booking-backend/internal/availability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	blocks []*Block
	filter Filter
}

func (r *memRepo) Create(ctx context.Context, b *Block) error {
	b.ID = "11111111-1111-1111-1111-111111111111"
	b.CreatedAt = time.Now()
	r.blocks = append(r.blocks, b)
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*Block, error) {
	for _, b := range r.blocks {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) List(ctx context.Context, filter Filter) ([]*Block, int, error) {
	r.filter = filter
	return r.blocks, len(r.blocks), nil
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	for i, b := range r.blocks {
		if b.ID == id {
			r.blocks = append(r.blocks[:i], r.blocks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memRepo) ListOverlapping(ctx context.Context, from, to time.Time) ([]availability.MaintenanceBlock, error) {
	var out []availability.MaintenanceBlock
	for _, b := range r.blocks {
		if b.StartAt.Before(to) && from.Before(b.EndAt) {
			out = append(out, availability.MaintenanceBlock{StartAt: b.StartAt, EndAt: b.EndAt, Reason: b.Reason})
		}
	}
	return out, nil
}

func TestCreate(t *testing.T) {
	start := time.Date(2025, time.June, 10, 16, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		repo := &memRepo{}
		svc := NewService(repo)

		b, err := svc.Create(ctx, CreateRequest{StartAt: start, EndAt: start.Add(4 * time.Hour), Reason: "  Bounce house repair ", CreatedBy: "admin-1"})
		require.NoError(t, err)
		assert.Equal(t, "Bounce house repair", b.Reason)
		require.NotNil(t, b.CreatedBy)
		assert.Equal(t, "admin-1", *b.CreatedBy)

		blocks, err := svc.ListOverlapping(ctx, start.Add(time.Hour), start.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Len(t, blocks, 1)
	})

	t.Run("end must follow start", func(t *testing.T) {
		svc := NewService(&memRepo{})
		_, err := svc.Create(ctx, CreateRequest{StartAt: start, EndAt: start, Reason: "x"})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("reason required", func(t *testing.T) {
		svc := NewService(&memRepo{})
		_, err := svc.Create(ctx, CreateRequest{StartAt: start, EndAt: start.Add(time.Hour), Reason: "   "})
		assert.ErrorIs(t, err, ErrReasonRequired)
	})
}

func TestList_NormalizesPaging(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)

	_, _, err := svc.List(context.Background(), Filter{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.filter.Page)
	assert.Equal(t, 100, repo.filter.PageSize)

	from := time.Now()
	to := from.Add(-time.Hour)
	_, _, err = svc.List(context.Background(), Filter{From: &from, To: &to})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}
