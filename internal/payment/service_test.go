package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==== Fakes ====

type stubRepo struct {
	seq       int
	payments  map[string]*Payment
	createErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{payments: map[string]*Payment{}}
}

func (r *stubRepo) add(p *Payment) *Payment {
	if p.ID == "" {
		r.seq++
		p.ID = fmt.Sprintf("payment-%d", r.seq)
	}
	cp := *p
	r.payments[p.ID] = &cp
	return p
}

func (r *stubRepo) Create(_ context.Context, p *Payment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	p.ID = fmt.Sprintf("payment-%d", r.seq)
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubRepo) List(_ context.Context, _ Filter) ([]*Payment, int, error) {
	out := make([]*Payment, 0, len(r.payments))
	for _, p := range r.payments {
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *stubRepo) MarkRefunded(_ context.Context, id, refundID string) error {
	p, ok := r.payments[id]
	if !ok {
		return ErrNotFound
	}
	if p.Status == StatusRefunded {
		return errAlreadyRefunded
	}
	p.Status = StatusRefunded
	p.RefundID = &refundID
	return nil
}

type stubGateway struct {
	chargeResult *ChargeResult
	chargeErr    error
	chargeCalls  int

	refundCalls map[string]int
	refundErr   error
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		chargeResult: &ChargeResult{ChargeID: "chrg_1", Paid: true},
		refundCalls:  map[string]int{},
	}
}

func (g *stubGateway) Charge(_ context.Context, _ int64, _, _ string, _ map[string]any) (*ChargeResult, error) {
	g.chargeCalls++
	if g.chargeErr != nil {
		return nil, g.chargeErr
	}
	return g.chargeResult, nil
}

func (g *stubGateway) Refund(_ context.Context, chargeID string, _ int64) (string, error) {
	if g.refundErr != nil {
		return "", g.refundErr
	}
	g.refundCalls[chargeID]++
	return "rfnd_1", nil
}

type capturePublisher struct {
	keys []string
}

func (p *capturePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	p.keys = append(p.keys, key)
	return nil
}

func newTestService() (Service, *stubRepo, *stubGateway, *capturePublisher) {
	repo := newStubRepo()
	gateway := newStubGateway()
	pub := &capturePublisher{}
	return NewService(repo, gateway, pub, "thb"), repo, gateway, pub
}

// ==== Tests ====

func TestChargeValidation(t *testing.T) {
	ctx := context.Background()

	valid := ChargeRequest{
		BookingID: "booking-1",
		ClientID:  "client-1",
		Amount:    10000,
		CardToken: "tokn_1",
	}

	tests := []struct {
		name   string
		mutate func(*ChargeRequest)
	}{
		{"zero amount", func(r *ChargeRequest) { r.Amount = 0 }},
		{"negative amount", func(r *ChargeRequest) { r.Amount = -1 }},
		{"missing card token", func(r *ChargeRequest) { r.CardToken = "" }},
		{"missing booking", func(r *ChargeRequest) { r.BookingID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, gateway, _ := newTestService()
			req := valid
			tt.mutate(&req)

			_, err := svc.Charge(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidCharge)
			assert.Zero(t, gateway.chargeCalls)
		})
	}
}

func TestChargeCapturesPayment(t *testing.T) {
	svc, repo, _, _ := newTestService()

	p, err := svc.Charge(context.Background(), ChargeRequest{
		BookingID: "booking-1",
		ClientID:  "client-1",
		Amount:    10000,
		CardToken: "tokn_1",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, p.Status)
	assert.Equal(t, "chrg_1", p.ChargeID)
	assert.Equal(t, "thb", p.Currency)
	assert.Equal(t, int64(10000), p.Amount)

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, stored.Status)
}

func TestChargeDeclined(t *testing.T) {
	svc, repo, gateway, _ := newTestService()
	gateway.chargeResult = &ChargeResult{
		ChargeID:       "chrg_declined",
		Paid:           false,
		FailureCode:    "insufficient_fund",
		FailureMessage: "insufficient funds",
	}

	_, err := svc.Charge(context.Background(), ChargeRequest{
		BookingID: "booking-1",
		ClientID:  "client-1",
		Amount:    10000,
		CardToken: "tokn_1",
	})
	assert.ErrorIs(t, err, ErrChargeFailed)

	// The declined attempt is kept for the payment history.
	all, _, listErr := repo.List(context.Background(), Filter{})
	require.NoError(t, listErr)
	require.Len(t, all, 1)
	assert.Equal(t, StatusFailed, all[0].Status)
	assert.Equal(t, "chrg_declined", all[0].ChargeID)
}

func TestChargeRefundsOnDuplicate(t *testing.T) {
	svc, repo, gateway, _ := newTestService()
	repo.createErr = ErrAlreadyPaid

	_, err := svc.Charge(context.Background(), ChargeRequest{
		BookingID: "booking-1",
		ClientID:  "client-1",
		Amount:    10000,
		CardToken: "tokn_1",
	})
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	// The captured charge must be given back when its row lost the race.
	assert.Equal(t, 1, gateway.refundCalls["chrg_1"])
}

func TestProcessRefund(t *testing.T) {
	ctx := context.Background()

	paid := func() *Payment {
		return &Payment{
			BookingID: "booking-1",
			ClientID:  "client-1",
			Amount:    10000,
			Currency:  "thb",
			ChargeID:  "chrg_1",
			Status:    StatusPaid,
		}
	}

	t.Run("refunds a paid payment", func(t *testing.T) {
		svc, repo, gateway, pub := newTestService()
		p := repo.add(paid())

		require.NoError(t, svc.ProcessRefund(ctx, p.ID))

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusRefunded, got.Status)
		require.NotNil(t, got.RefundID)
		assert.Equal(t, "rfnd_1", *got.RefundID)
		assert.Equal(t, 1, gateway.refundCalls["chrg_1"])
		assert.Equal(t, []string{"payment.refunded"}, pub.keys)
	})

	t.Run("refunding twice is a no-op", func(t *testing.T) {
		svc, repo, gateway, pub := newTestService()
		p := repo.add(paid())

		require.NoError(t, svc.ProcessRefund(ctx, p.ID))
		require.NoError(t, svc.ProcessRefund(ctx, p.ID))

		assert.Equal(t, 1, gateway.refundCalls["chrg_1"])
		assert.Equal(t, []string{"payment.refunded"}, pub.keys)
	})

	t.Run("failed payment is not refundable", func(t *testing.T) {
		svc, repo, gateway, _ := newTestService()
		p := paid()
		p.Status = StatusFailed
		repo.add(p)

		err := svc.ProcessRefund(ctx, p.ID)
		assert.ErrorIs(t, err, ErrNotRefundable)
		assert.Empty(t, gateway.refundCalls)
	})

	t.Run("unknown payment", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		err := svc.ProcessRefund(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("gateway failure surfaces and leaves status paid", func(t *testing.T) {
		svc, repo, gateway, pub := newTestService()
		p := repo.add(paid())
		gateway.refundErr = errors.New("gateway down")

		err := svc.ProcessRefund(ctx, p.ID)
		require.Error(t, err)

		got, getErr := repo.GetByID(ctx, p.ID)
		require.NoError(t, getErr)
		assert.Equal(t, StatusPaid, got.Status)
		assert.Empty(t, pub.keys)
	})
}
