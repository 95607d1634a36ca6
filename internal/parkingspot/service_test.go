package parkingspot

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	seq   int
	spots map[string]*Spot
}

func newMemRepo() *memRepo {
	return &memRepo{spots: map[string]*Spot{}}
}

func (r *memRepo) Create(_ context.Context, sp *Spot) error {
	r.seq++
	sp.ID = fmt.Sprintf("spot-%d", r.seq)
	cp := *sp
	r.spots[sp.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Spot, error) {
	sp, ok := r.spots[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sp
	cp.Photos = append([]string(nil), sp.Photos...)
	return &cp, nil
}

func (r *memRepo) List(_ context.Context, _ Filter) ([]*Spot, int, error) {
	out := make([]*Spot, 0, len(r.spots))
	for _, sp := range r.spots {
		cp := *sp
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *memRepo) Update(_ context.Context, sp *Spot) error {
	if _, ok := r.spots[sp.ID]; !ok {
		return ErrNotFound
	}
	cp := *sp
	cp.Photos = append([]string(nil), sp.Photos...)
	r.spots[sp.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.spots[id]; !ok {
		return ErrNotFound
	}
	delete(r.spots, id)
	return nil
}

func newSpotService() (Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo), repo
}

func createSpot(t *testing.T, svc Service, partnerID string) *Spot {
	t.Helper()
	sp, err := svc.Create(context.Background(), partnerID, CreateRequest{
		Name:         "Central Garage B2",
		Address:      "88 Sukhumvit Rd",
		City:         "Bangkok",
		Latitude:     13.7563,
		Longitude:    100.5018,
		PricePerHour: 5000,
	})
	require.NoError(t, err)
	return sp
}

func TestCreateSpot(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to available with empty photos", func(t *testing.T) {
		svc, _ := newSpotService()
		sp := createSpot(t, svc, "partner-1")

		assert.Equal(t, StatusAvailable, sp.Status)
		assert.NotNil(t, sp.Photos)
		assert.Empty(t, sp.Photos)
	})

	t.Run("requires a name", func(t *testing.T) {
		svc, _ := newSpotService()
		_, err := svc.Create(ctx, "partner-1", CreateRequest{Name: "  ", PricePerHour: 5000})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("requires a positive price", func(t *testing.T) {
		svc, _ := newSpotService()
		_, err := svc.Create(ctx, "partner-1", CreateRequest{Name: "Garage", PricePerHour: 0})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestSpotOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("update by another partner is rejected", func(t *testing.T) {
		svc, _ := newSpotService()
		sp := createSpot(t, svc, "partner-1")

		name := "Renamed"
		_, err := svc.Update(ctx, sp.ID, "partner-2", UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("delete by another partner is rejected", func(t *testing.T) {
		svc, repo := newSpotService()
		sp := createSpot(t, svc, "partner-1")

		err := svc.Delete(ctx, sp.ID, "partner-2")
		assert.ErrorIs(t, err, ErrNotOwner)

		_, err = repo.GetByID(ctx, sp.ID)
		assert.NoError(t, err)
	})

	t.Run("owner updates status", func(t *testing.T) {
		svc, _ := newSpotService()
		sp := createSpot(t, svc, "partner-1")

		status := StatusMaintenance
		got, err := svc.Update(ctx, sp.ID, "partner-1", UpdateRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, StatusMaintenance, got.Status)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		svc, _ := newSpotService()
		sp := createSpot(t, svc, "partner-1")

		status := Status("closed")
		_, err := svc.Update(ctx, sp.ID, "partner-1", UpdateRequest{Status: &status})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestSpotPhotos(t *testing.T) {
	ctx := context.Background()

	t.Run("add and remove", func(t *testing.T) {
		svc, repo := newSpotService()
		sp := createSpot(t, svc, "partner-1")

		got, err := svc.AddPhoto(ctx, sp.ID, "partner-1", "file-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"file-1"}, got.Photos)

		got, err = svc.AddPhoto(ctx, sp.ID, "partner-1", "file-2")
		require.NoError(t, err)
		assert.Equal(t, []string{"file-1", "file-2"}, got.Photos)

		got, err = svc.RemovePhoto(ctx, sp.ID, "partner-1", "file-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"file-2"}, got.Photos)

		stored, err := repo.GetByID(ctx, sp.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"file-2"}, stored.Photos)
	})

	t.Run("adding the same photo twice keeps one entry", func(t *testing.T) {
		svc, _ := newSpotService()
		sp := createSpot(t, svc, "partner-1")

		_, err := svc.AddPhoto(ctx, sp.ID, "partner-1", "file-1")
		require.NoError(t, err)

		got, err := svc.AddPhoto(ctx, sp.ID, "partner-1", "file-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"file-1"}, got.Photos)
	})

	t.Run("removing an unattached photo fails", func(t *testing.T) {
		svc, _ := newSpotService()
		sp := createSpot(t, svc, "partner-1")

		_, err := svc.RemovePhoto(ctx, sp.ID, "partner-1", "file-9")
		assert.ErrorIs(t, err, ErrPhotoNotFound)
	})

	t.Run("photos are owner-only", func(t *testing.T) {
		svc, _ := newSpotService()
		sp := createSpot(t, svc, "partner-1")

		_, err := svc.AddPhoto(ctx, sp.ID, "partner-2", "file-1")
		assert.ErrorIs(t, err, ErrNotOwner)

		_, err = svc.RemovePhoto(ctx, sp.ID, "partner-2", "file-1")
		assert.ErrorIs(t, err, ErrNotOwner)
	})
}
