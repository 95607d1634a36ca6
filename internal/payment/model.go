package payment

import (
	"errors"
	"net/http"
	"time"

	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/apperror"
)

type Status string

const (
	StatusPaid     Status = "paid"
	StatusRefunded Status = "refunded"
	StatusFailed   Status = "failed"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "payment not found")
	ErrChargeFailed  = apperror.New(http.StatusPaymentRequired, "charge was declined")
	ErrAlreadyPaid   = apperror.New(http.StatusConflict, "booking is already paid")
	ErrNotRefundable = apperror.New(http.StatusConflict, "payment cannot be refunded")
	ErrInvalidCharge = apperror.New(http.StatusBadRequest, "invalid charge request")
)

// errAlreadyRefunded signals that the refund update found nothing to do.
var errAlreadyRefunded = errors.New("payment already refunded")

type Payment struct {
	ID        string
	BookingID string
	ClientID  string
	Amount    int64 // smallest currency unit
	Currency  string
	ChargeID  string
	Status    Status
	RefundID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Filter struct {
	ClientID  string
	BookingID string
	Status    string
	Page      int
	PageSize  int
}
