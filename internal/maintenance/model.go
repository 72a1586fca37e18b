package maintenance

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "maintenance block not found")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "endAt must be after startAt")
	ErrReasonRequired   = apperror.New(http.StatusBadRequest, "reason is required")
)

// Block closes the calendar for [StartAt, EndAt), e.g. for equipment repair or staff holidays.
type Block struct {
	ID        string
	StartAt   time.Time
	EndAt     time.Time
	Reason    string
	CreatedBy *string
	CreatedAt time.Time
}

type Filter struct {
	// From/To keep only blocks intersecting the window when set.
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

type CreateRequest struct {
	StartAt   time.Time
	EndAt     time.Time
	Reason    string
	CreatedBy string
}
