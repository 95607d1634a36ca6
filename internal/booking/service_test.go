package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// ==== Fakes ====

type fakeRepo struct {
	seq      int
	bookings map[string]*Booking

	// updateErr injects an UpdateStatus failure for a booking ID.
	updateErr map[string]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings:  map[string]*Booking{},
		updateErr: map[string]error{},
	}
}

func (r *fakeRepo) add(b *Booking) *Booking {
	if b.ID == "" {
		r.seq++
		b.ID = fmt.Sprintf("booking-%d", r.seq)
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return b
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	r.seq++
	b.ID = fmt.Sprintf("booking-%d", r.seq)
	b.CreatedAt = testNow
	b.UpdatedAt = testNow
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	out := make([]*Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		cp := *b
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	if err := r.updateErr[id]; err != nil {
		return err
	}
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepo) Confirm(_ context.Context, id, paymentID string) error {
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = StatusConfirmed
	b.PaymentID = &paymentID
	return nil
}

func (r *fakeRepo) HasOverlap(_ context.Context, partnerID string, start, end time.Time) (bool, error) {
	for _, b := range r.bookings {
		if b.PartnerID != partnerID || b.Status != StatusConfirmed {
			continue
		}
		if start.Before(b.EndTime) && b.StartTime.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ListExpiredPending(_ context.Context, cutoff time.Time, limit int) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.Status == StatusPending && b.CreatedAt.Before(cutoff) {
			cp := *b
			out = append(out, &cp)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakePartners struct {
	bookable bool
	actions  []string
	deduped  map[string]bool
}

func newFakePartners() *fakePartners {
	return &fakePartners{bookable: true, deduped: map[string]bool{}}
}

func (p *fakePartners) IsBookable(_ context.Context, _ string) (bool, error) {
	return p.bookable, nil
}

func (p *fakePartners) AppendAuditLog(_ context.Context, _, _, action string) error {
	p.actions = append(p.actions, action)
	return nil
}

func (p *fakePartners) AppendAuditLogOnce(_ context.Context, _, _, action, dedupeKey string) error {
	if p.deduped[dedupeKey] {
		return nil
	}
	p.deduped[dedupeKey] = true
	p.actions = append(p.actions, action)
	return nil
}

type fakeRefunds struct {
	calls map[string]int
	err   error
}

func newFakeRefunds() *fakeRefunds {
	return &fakeRefunds{calls: map[string]int{}}
}

func (f *fakeRefunds) ProcessRefund(_ context.Context, paymentID string) error {
	if f.err != nil {
		return f.err
	}
	f.calls[paymentID]++
	return nil
}

type fakePublisher struct {
	keys []string
}

func (f *fakePublisher) PublishJSON(_ context.Context, key string, _ any) error {
	f.keys = append(f.keys, key)
	return nil
}

func newTestService() (*service, *fakeRepo, *fakePartners, *fakeRefunds, *fakePublisher) {
	repo := newFakeRepo()
	partners := newFakePartners()
	refunds := newFakeRefunds()
	pub := &fakePublisher{}

	svc := NewService(repo, partners, refunds, pub).(*service)
	svc.now = func() time.Time { return testNow }

	return svc, repo, partners, refunds, pub
}

// ==== Tests ====

func TestQuote(t *testing.T) {
	start := testNow

	tests := []struct {
		name     string
		rate     int64
		duration time.Duration
		want     int64
	}{
		{"exact hours", 5000, 2 * time.Hour, 10000},
		{"partial hour rounds up", 5000, 90 * time.Minute, 10000},
		{"one minute bills one hour", 5000, time.Minute, 5000},
		{"zero duration", 5000, 0, 0},
		{"negative duration", 5000, -time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quote(tt.rate, start, start.Add(tt.duration))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusExpired, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusExpired, StatusConfirmed, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.from, tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()

	base := CreateRequest{
		ClientID:      "client-1",
		ParkingSpotID: "spot-1",
		PartnerID:     "partner-1",
		StartTime:     testNow.Add(time.Hour),
		EndTime:       testNow.Add(2 * time.Hour),
		Amount:        5000,
	}

	t.Run("end before start", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		req := base
		req.EndTime = req.StartTime.Add(-time.Minute)

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("start in the past", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		req := base
		req.StartTime = testNow.Add(-time.Hour)
		req.EndTime = testNow.Add(time.Hour)

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrStartTimePast)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		req := base
		req.Status = Status("bogus")

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("partner not bookable", func(t *testing.T) {
		svc, _, partners, _, _ := newTestService()
		partners.bookable = false

		_, err := svc.Create(ctx, base)
		assert.ErrorIs(t, err, ErrPartnerUnavailable)
	})
}

func TestCreateOverlap(t *testing.T) {
	ctx := context.Background()

	// Confirmed booking occupying 14:00-16:00.
	seed := &Booking{
		ClientID:      "client-0",
		ParkingSpotID: "spot-1",
		PartnerID:     "partner-1",
		StartTime:     testNow.Add(2 * time.Hour),
		EndTime:       testNow.Add(4 * time.Hour),
		Status:        StatusConfirmed,
	}

	req := CreateRequest{
		ClientID:      "client-1",
		ParkingSpotID: "spot-1",
		PartnerID:     "partner-1",
		Amount:        5000,
	}

	t.Run("overlapping window is rejected", func(t *testing.T) {
		svc, repo, _, _, _ := newTestService()
		repo.add(seed)

		r := req
		r.StartTime = testNow.Add(3 * time.Hour)
		r.EndTime = testNow.Add(5 * time.Hour)

		_, err := svc.Create(ctx, r)
		assert.ErrorIs(t, err, ErrTimeConflict)
	})

	t.Run("back-to-back windows do not conflict", func(t *testing.T) {
		svc, repo, _, _, _ := newTestService()
		repo.add(seed)

		r := req
		r.StartTime = testNow.Add(4 * time.Hour)
		r.EndTime = testNow.Add(5 * time.Hour)

		b, err := svc.Create(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, b.Status)
	})

	t.Run("other partner is unaffected", func(t *testing.T) {
		svc, repo, _, _, _ := newTestService()
		repo.add(seed)

		r := req
		r.PartnerID = "partner-2"
		r.StartTime = testNow.Add(3 * time.Hour)
		r.EndTime = testNow.Add(5 * time.Hour)

		_, err := svc.Create(ctx, r)
		assert.NoError(t, err)
	})
}

func TestCreatePublishesEvent(t *testing.T) {
	svc, _, _, _, pub := newTestService()

	b, err := svc.Create(context.Background(), CreateRequest{
		ClientID:      "client-1",
		ParkingSpotID: "spot-1",
		PartnerID:     "partner-1",
		StartTime:     testNow.Add(time.Hour),
		EndTime:       testNow.Add(2 * time.Hour),
		Amount:        5000,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, []string{"booking.created"}, pub.keys)
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	paymentID := "payment-1"

	newPaid := func() *Booking {
		return &Booking{
			ClientID:  "client-1",
			PartnerID: "partner-1",
			StartTime: testNow.Add(time.Hour),
			EndTime:   testNow.Add(2 * time.Hour),
			Status:    StatusConfirmed,
			PaymentID: &paymentID,
		}
	}

	t.Run("refunds payment and marks cancelled", func(t *testing.T) {
		svc, repo, partners, refunds, pub := newTestService()
		b := repo.add(newPaid())

		require.NoError(t, svc.Cancel(ctx, b.ID, "client-1"))

		got, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
		assert.Equal(t, 1, refunds.calls[paymentID])
		assert.Equal(t, []string{"Booking cancelled by client"}, partners.actions)
		assert.Contains(t, pub.keys, "booking.cancelled")
	})

	t.Run("booking without payment skips refund", func(t *testing.T) {
		svc, repo, _, refunds, _ := newTestService()
		b := newPaid()
		b.PaymentID = nil
		repo.add(b)

		require.NoError(t, svc.Cancel(ctx, b.ID, "client-1"))
		assert.Empty(t, refunds.calls)
	})

	t.Run("only the owning client may cancel", func(t *testing.T) {
		svc, repo, _, refunds, _ := newTestService()
		b := repo.add(newPaid())

		err := svc.Cancel(ctx, b.ID, "client-2")
		assert.ErrorIs(t, err, ErrPermissionDenied)
		assert.Empty(t, refunds.calls)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		svc, repo, _, _, _ := newTestService()
		b := newPaid()
		b.Status = StatusCompleted
		repo.add(b)

		err := svc.Cancel(ctx, b.ID, "client-1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		err := svc.Cancel(ctx, "missing", "client-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("retry resumes after refund failure", func(t *testing.T) {
		svc, repo, partners, refunds, _ := newTestService()
		b := repo.add(newPaid())

		refunds.err = errors.New("gateway down")
		err := svc.Cancel(ctx, b.ID, "client-1")
		require.Error(t, err)

		// The failure stopped the saga before the status change.
		got, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, got.Status)
		assert.Empty(t, partners.actions)

		refunds.err = nil
		require.NoError(t, svc.Cancel(ctx, b.ID, "client-1"))

		got, err = repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
		assert.Equal(t, 1, refunds.calls[paymentID])
		assert.Equal(t, []string{"Booking cancelled by client"}, partners.actions)
	})

	t.Run("cancelling twice stays idempotent", func(t *testing.T) {
		svc, repo, partners, _, _ := newTestService()
		b := repo.add(newPaid())

		require.NoError(t, svc.Cancel(ctx, b.ID, "client-1"))
		require.NoError(t, svc.Cancel(ctx, b.ID, "client-1"))

		got, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)

		// The audit entry is deduplicated per booking.
		assert.Equal(t, []string{"Booking cancelled by client"}, partners.actions)
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches payment and confirms", func(t *testing.T) {
		svc, repo, partners, _, pub := newTestService()
		b := repo.add(&Booking{
			ClientID:  "client-1",
			PartnerID: "partner-1",
			Status:    StatusPending,
		})

		got, err := svc.Confirm(ctx, b.ID, "payment-1")
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, got.Status)
		require.NotNil(t, got.PaymentID)
		assert.Equal(t, "payment-1", *got.PaymentID)
		assert.Equal(t, []string{"Booking confirmed after payment"}, partners.actions)
		assert.Equal(t, []string{"booking.confirmed"}, pub.keys)
	})

	t.Run("confirming twice fails", func(t *testing.T) {
		svc, repo, _, _, _ := newTestService()
		b := repo.add(&Booking{
			ClientID:  "client-1",
			PartnerID: "partner-1",
			Status:    StatusPending,
		})

		_, err := svc.Confirm(ctx, b.ID, "payment-1")
		require.NoError(t, err)

		_, err = svc.Confirm(ctx, b.ID, "payment-2")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown status", func(t *testing.T) {
		svc, repo, _, _, _ := newTestService()
		b := repo.add(&Booking{PartnerID: "partner-1", Status: StatusPending})

		_, err := svc.UpdateStatus(ctx, b.ID, Status("bogus"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("rejects illegal transition", func(t *testing.T) {
		svc, repo, _, _, _ := newTestService()
		b := repo.add(&Booking{PartnerID: "partner-1", Status: StatusPending})

		_, err := svc.UpdateStatus(ctx, b.ID, StatusCompleted)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("applies transition and records audit", func(t *testing.T) {
		svc, repo, partners, _, _ := newTestService()
		b := repo.add(&Booking{PartnerID: "partner-1", Status: StatusConfirmed})

		got, err := svc.UpdateStatus(ctx, b.ID, StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, got.Status)
		require.Len(t, partners.actions, 1)
		assert.Equal(t, "Booking status changed from confirmed to completed", partners.actions[0])
	})
}

func TestAutoCancelExpired(t *testing.T) {
	ctx := context.Background()

	seed := func(repo *fakeRepo, id string, age time.Duration, status Status) {
		repo.add(&Booking{
			ID:        id,
			ClientID:  "client-1",
			PartnerID: "partner-1",
			Status:    status,
			CreatedAt: testNow.Add(-age),
		})
	}

	t.Run("cancels only stale pending bookings", func(t *testing.T) {
		svc, repo, partners, _, pub := newTestService()
		seed(repo, "stale", 31*time.Minute, StatusPending)
		seed(repo, "fresh", 29*time.Minute, StatusPending)
		seed(repo, "boundary", 30*time.Minute, StatusPending)
		seed(repo, "paid", 45*time.Minute, StatusConfirmed)

		n, err := svc.AutoCancelExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		stale, _ := repo.GetByID(ctx, "stale")
		assert.Equal(t, StatusCancelled, stale.Status)

		fresh, _ := repo.GetByID(ctx, "fresh")
		assert.Equal(t, StatusPending, fresh.Status)

		boundary, _ := repo.GetByID(ctx, "boundary")
		assert.Equal(t, StatusPending, boundary.Status)

		paid, _ := repo.GetByID(ctx, "paid")
		assert.Equal(t, StatusConfirmed, paid.Status)

		assert.Equal(t, []string{"Booking auto-cancelled due to expiration"}, partners.actions)
		assert.Equal(t, []string{"booking.cancelled"}, pub.keys)
	})

	t.Run("one failing row does not stall the sweep", func(t *testing.T) {
		svc, repo, _, _, _ := newTestService()
		seed(repo, "bad", 40*time.Minute, StatusPending)
		seed(repo, "good", 40*time.Minute, StatusPending)
		repo.updateErr["bad"] = errors.New("deadlock")

		n, err := svc.AutoCancelExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		good, _ := repo.GetByID(ctx, "good")
		assert.Equal(t, StatusCancelled, good.Status)

		bad, _ := repo.GetByID(ctx, "bad")
		assert.Equal(t, StatusPending, bad.Status)
	})

	t.Run("rerun is a no-op once swept", func(t *testing.T) {
		svc, repo, partners, _, _ := newTestService()
		seed(repo, "stale", 31*time.Minute, StatusPending)

		n, err := svc.AutoCancelExpired(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, n)

		n, err = svc.AutoCancelExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Len(t, partners.actions, 1)
	})
}
