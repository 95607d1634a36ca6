package review

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	seq     int
	reviews map[string]*Review
}

func newMemRepo() *memRepo {
	return &memRepo{reviews: map[string]*Review{}}
}

func (r *memRepo) Create(_ context.Context, rev *Review) error {
	for _, existing := range r.reviews {
		if existing.ClientID == rev.ClientID && existing.ParkingSpotID == rev.ParkingSpotID {
			return ErrAlreadyReviewed
		}
	}
	r.seq++
	rev.ID = fmt.Sprintf("review-%d", r.seq)
	cp := *rev
	r.reviews[rev.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Review, error) {
	rev, ok := r.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rev
	return &cp, nil
}

func (r *memRepo) List(_ context.Context, _ Filter) ([]*Review, int, error) {
	out := make([]*Review, 0, len(r.reviews))
	for _, rev := range r.reviews {
		cp := *rev
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()

	valid := CreateRequest{
		ClientID:      "client-1",
		ParkingSpotID: "spot-1",
		Rating:        4,
		Comment:       "  Easy access, well lit.  ",
	}

	t.Run("stores trimmed comment", func(t *testing.T) {
		svc := NewService(newMemRepo())

		rev, err := svc.Create(ctx, valid)
		require.NoError(t, err)
		assert.Equal(t, 4, rev.Rating)
		assert.Equal(t, "Easy access, well lit.", rev.Comment)
	})

	t.Run("rating bounds", func(t *testing.T) {
		svc := NewService(newMemRepo())

		for _, rating := range []int{0, -1, 6} {
			req := valid
			req.Rating = rating
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
		}

		for _, rating := range []int{1, 5} {
			req := valid
			req.ClientID = fmt.Sprintf("client-rating-%d", rating)
			req.Rating = rating
			_, err := svc.Create(ctx, req)
			assert.NoError(t, err, "rating %d", rating)
		}
	})

	t.Run("one review per client and spot", func(t *testing.T) {
		svc := NewService(newMemRepo())

		_, err := svc.Create(ctx, valid)
		require.NoError(t, err)

		_, err = svc.Create(ctx, valid)
		assert.ErrorIs(t, err, ErrAlreadyReviewed)

		other := valid
		other.ParkingSpotID = "spot-2"
		_, err = svc.Create(ctx, other)
		assert.NoError(t, err)
	})
}

func TestDeleteReview(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo)

	rev, err := svc.Create(ctx, CreateRequest{
		ClientID:      "client-1",
		ParkingSpotID: "spot-1",
		Rating:        5,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rev.ID))
	assert.ErrorIs(t, svc.Delete(ctx, rev.ID), ErrNotFound)
}
