package payout

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	seq     int
	payouts map[string]*Payout
}

func newMemRepo() *memRepo {
	return &memRepo{payouts: map[string]*Payout{}}
}

func (r *memRepo) Create(_ context.Context, p *Payout) error {
	r.seq++
	p.ID = fmt.Sprintf("payout-%d", r.seq)
	cp := *p
	r.payouts[p.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Payout, error) {
	p, ok := r.payouts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) List(_ context.Context, _ Filter) ([]*Payout, int, error) {
	out := make([]*Payout, 0, len(r.payouts))
	for _, p := range r.payouts {
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

// UpdateStatus mirrors the SQL guard: only pending payouts settle.
func (r *memRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	p, ok := r.payouts[id]
	if !ok {
		return ErrNotFound
	}
	if p.Status != StatusPending {
		return ErrNotPending
	}
	p.Status = status
	if status == StatusPaid {
		now := time.Now().UTC()
		p.PaidAt = &now
	}
	return nil
}

func newPayoutService() (Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo), repo
}

func validRequest() CreateRequest {
	return CreateRequest{
		PartnerID:   "partner-1",
		Amount:      250000,
		PeriodStart: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreatePayout(t *testing.T) {
	ctx := context.Background()

	t.Run("starts pending", func(t *testing.T) {
		svc, _ := newPayoutService()

		p, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, StatusPending, p.Status)
		assert.Nil(t, p.PaidAt)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		svc, _ := newPayoutService()
		req := validRequest()
		req.Amount = 0

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("rejects inverted period", func(t *testing.T) {
		svc, _ := newPayoutService()
		req := validRequest()
		req.PeriodStart, req.PeriodEnd = req.PeriodEnd, req.PeriodStart

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("rejects empty period", func(t *testing.T) {
		svc, _ := newPayoutService()
		req := validRequest()
		req.PeriodEnd = req.PeriodStart

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})
}

func TestSettlePayout(t *testing.T) {
	ctx := context.Background()

	t.Run("paid stamps paid_at", func(t *testing.T) {
		svc, _ := newPayoutService()
		p, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)

		got, err := svc.UpdateStatus(ctx, p.ID, StatusPaid)
		require.NoError(t, err)
		assert.Equal(t, StatusPaid, got.Status)
		assert.NotNil(t, got.PaidAt)
	})

	t.Run("failed leaves paid_at unset", func(t *testing.T) {
		svc, _ := newPayoutService()
		p, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)

		got, err := svc.UpdateStatus(ctx, p.ID, StatusFailed)
		require.NoError(t, err)
		assert.Equal(t, StatusFailed, got.Status)
		assert.Nil(t, got.PaidAt)
	})

	t.Run("settling twice conflicts", func(t *testing.T) {
		svc, _ := newPayoutService()
		p, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, p.ID, StatusPaid)
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, p.ID, StatusFailed)
		assert.ErrorIs(t, err, ErrNotPending)
	})

	t.Run("cannot settle back to pending", func(t *testing.T) {
		svc, _ := newPayoutService()
		p, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, p.ID, StatusPending)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown payout", func(t *testing.T) {
		svc, _ := newPayoutService()

		_, err := svc.UpdateStatus(ctx, "missing", StatusPaid)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
