package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carparkly/carparkly-backend-api-final/internal/booking"
	"github.com/carparkly/carparkly-backend-api-final/internal/parkingspot"
	"github.com/carparkly/carparkly-backend-api-final/internal/partner"
	"github.com/carparkly/carparkly-backend-api-final/internal/user"
)

// Route bindings require UUID path parameters, so fixtures use real ones.
const (
	testBookingID   = "7b0d1a9e-19aa-4e6b-9f0a-2a6c3d4e5f60"
	testSpotID      = "8c1e2b0f-2bbb-4f7c-a01b-3b7d4e5f6071"
	testClientID    = "9d2f3c10-3ccc-4a8d-b12c-4c8e5f607182"
	testPartnerID   = "ae304d21-4ddd-4b9e-c23d-5d9f60718293"
	testPartnerUser = "bf415e32-5eee-4caf-d34e-6ea0718293a4"
	testAdminID     = "c0526f43-6fff-4db0-e45f-7fb18293a4b5"
	testStrangerID  = "d1637054-7aaa-4ec1-f560-80c293a4b5c6"
)

// ==== Fakes ====

type fakeBookingService struct {
	bookings   map[string]*booking.Booking
	lastFilter booking.Filter
}

func newFakeBookingService() *fakeBookingService {
	return &fakeBookingService{bookings: map[string]*booking.Booking{}}
}

func (f *fakeBookingService) add(b *booking.Booking) *booking.Booking {
	f.bookings[b.ID] = b
	return b
}

func (f *fakeBookingService) Create(_ context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	b := &booking.Booking{
		ID:            testBookingID,
		ClientID:      req.ClientID,
		ParkingSpotID: req.ParkingSpotID,
		PartnerID:     req.PartnerID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        booking.StatusPending,
		Amount:        req.Amount,
	}
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeBookingService) GetByID(_ context.Context, id string) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookingService) List(_ context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	f.lastFilter = filter
	out := make([]*booking.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, len(out), nil
}

func (f *fakeBookingService) Cancel(_ context.Context, bookingID, clientID string) error {
	b, ok := f.bookings[bookingID]
	if !ok {
		return booking.ErrNotFound
	}
	if b.ClientID != clientID {
		return booking.ErrPermissionDenied
	}
	b.Status = booking.StatusCancelled
	return nil
}

func (f *fakeBookingService) UpdateStatus(_ context.Context, id string, status booking.Status) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	if !booking.CanTransition(b.Status, status) {
		return nil, booking.ErrInvalidTransition
	}
	b.Status = status
	return b, nil
}

func (f *fakeBookingService) Confirm(_ context.Context, id, paymentID string) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	b.Status = booking.StatusConfirmed
	b.PaymentID = &paymentID
	return b, nil
}

func (f *fakeBookingService) AutoCancelExpired(_ context.Context) (int, error) {
	return 0, nil
}

func (f *fakeBookingService) Delete(_ context.Context, id string) error {
	if _, ok := f.bookings[id]; !ok {
		return booking.ErrNotFound
	}
	delete(f.bookings, id)
	return nil
}

// stubSpotService implements only the lookups the handler touches.
type stubSpotService struct {
	parkingspot.Service
	spots map[string]*parkingspot.Spot
}

func (s *stubSpotService) GetByID(_ context.Context, id string) (*parkingspot.Spot, error) {
	sp, ok := s.spots[id]
	if !ok {
		return nil, parkingspot.ErrNotFound
	}
	return sp, nil
}

type stubPartnerService struct {
	partner.Service
	byUserID map[string]*partner.Partner
}

func (s *stubPartnerService) GetByUserID(_ context.Context, userID string) (*partner.Partner, error) {
	p, ok := s.byUserID[userID]
	if !ok {
		return nil, partner.ErrNotFound
	}
	return p, nil
}

type stubUserService struct {
	user.Service
	users map[string]*user.User
}

func (s *stubUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

// ==== Harness ====

type fixture struct {
	handler  *Handler
	bookings *fakeBookingService
	spots    *stubSpotService
}

func newFixture() *fixture {
	bookings := newFakeBookingService()

	spots := &stubSpotService{spots: map[string]*parkingspot.Spot{
		testSpotID: {
			ID:           testSpotID,
			PartnerID:    testPartnerID,
			Name:         "Central Garage B2",
			Address:      "88 Sukhumvit Rd",
			City:         "Bangkok",
			PricePerHour: 5000,
			Status:       parkingspot.StatusAvailable,
		},
	}}

	partners := &stubPartnerService{byUserID: map[string]*partner.Partner{
		testPartnerUser: {ID: testPartnerID, UserID: testPartnerUser, Status: partner.StatusActive},
	}}

	email := "alice@example.com"
	users := &stubUserService{users: map[string]*user.User{
		testClientID: {ID: testClientID, Email: email, Role: user.RoleClient, IsActive: true},
	}}

	h := NewHandler(bookings, spots, partners, users, "thb")
	return &fixture{handler: h, bookings: bookings, spots: spots}
}

func (f *fixture) seedBooking(status booking.Status) *booking.Booking {
	return f.bookings.add(&booking.Booking{
		ID:            testBookingID,
		ClientID:      testClientID,
		ParkingSpotID: testSpotID,
		PartnerID:     testPartnerID,
		StartTime:     time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC),
		Status:        status,
		Amount:        10000,
	})
}

// serve runs one request against a fresh router authenticated as the
// given user.
func (f *fixture) serve(t *testing.T, userID, role, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authMiddleware := func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("userRole", role)
	}
	adminMiddleware := func(c *gin.Context) {
		if role != string(user.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
		}
	}

	r := gin.New()
	RegisterRoutes(r.Group("/v1"), f.handler, authMiddleware, adminMiddleware)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBooking(t *testing.T, w *httptest.ResponseRecorder) BookingResponse {
	t.Helper()
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// ==== Tests ====

func TestCreateBookingEndpoint(t *testing.T) {
	start := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

	body := func(spotID string, from, until time.Time) map[string]any {
		return map[string]any{
			"parking_spot_id": spotID,
			"start_time":      from.Format(time.RFC3339),
			"end_time":        until.Format(time.RFC3339),
		}
	}

	t.Run("quotes the amount from the spot rate", func(t *testing.T) {
		f := newFixture()

		w := f.serve(t, testClientID, "client", http.MethodPost, "/v1/bookings",
			body(testSpotID, start, start.Add(90*time.Minute)))

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := decodeBooking(t, w)
		assert.Equal(t, testClientID, resp.ClientID)
		assert.Equal(t, testPartnerID, resp.PartnerID)
		assert.Equal(t, "pending", resp.Status)

		// 90 minutes at 5000/hour bills two full hours.
		assert.Equal(t, int64(10000), resp.Amount)
	})

	t.Run("unknown spot", func(t *testing.T) {
		f := newFixture()

		w := f.serve(t, testClientID, "client", http.MethodPost, "/v1/bookings",
			body("11111111-2222-4333-8444-555555555555", start, start.Add(time.Hour)))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("spot under maintenance", func(t *testing.T) {
		f := newFixture()
		f.spots.spots[testSpotID].Status = parkingspot.StatusMaintenance

		w := f.serve(t, testClientID, "client", http.MethodPost, "/v1/bookings",
			body(testSpotID, start, start.Add(time.Hour)))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("end before start", func(t *testing.T) {
		f := newFixture()

		w := f.serve(t, testClientID, "client", http.MethodPost, "/v1/bookings",
			body(testSpotID, start, start.Add(-time.Hour)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetBookingEndpoint(t *testing.T) {
	path := "/v1/bookings/" + testBookingID

	t.Run("owner reads own booking", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusConfirmed)

		w := f.serve(t, testClientID, "client", http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("hosting partner reads it", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusConfirmed)

		w := f.serve(t, testPartnerUser, "partner", http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin reads it", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusConfirmed)

		w := f.serve(t, testAdminID, "admin", http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusConfirmed)

		w := f.serve(t, testStrangerID, "client", http.MethodGet, path, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture()

		w := f.serve(t, testClientID, "client", http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListBookingsEndpoint(t *testing.T) {
	t.Run("clients only see their own bookings", func(t *testing.T) {
		f := newFixture()

		w := f.serve(t, testClientID, "client", http.MethodGet, "/v1/bookings", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testClientID, f.bookings.lastFilter.ClientID)
	})

	t.Run("partners are scoped to their spots", func(t *testing.T) {
		f := newFixture()

		w := f.serve(t, testPartnerUser, "partner", http.MethodGet, "/v1/bookings", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testPartnerID, f.bookings.lastFilter.PartnerID)
		assert.Empty(t, f.bookings.lastFilter.ClientID)
	})

	t.Run("partner without profile is rejected", func(t *testing.T) {
		f := newFixture()

		w := f.serve(t, testStrangerID, "partner", http.MethodGet, "/v1/bookings", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admins filter freely", func(t *testing.T) {
		f := newFixture()

		w := f.serve(t, testAdminID, "admin", http.MethodGet, "/v1/bookings?client_id="+testClientID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testClientID, f.bookings.lastFilter.ClientID)
	})
}

func TestCancelBookingEndpoint(t *testing.T) {
	path := "/v1/bookings/" + testBookingID + "/cancel"

	t.Run("owner cancels", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusConfirmed)

		w := f.serve(t, testClientID, "client", http.MethodPost, path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		b, err := f.bookings.GetByID(context.Background(), testBookingID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, b.Status)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusConfirmed)

		w := f.serve(t, testStrangerID, "client", http.MethodPost, path, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUpdateBookingStatusEndpoint(t *testing.T) {
	path := "/v1/bookings/" + testBookingID + "/status"

	t.Run("admin applies a valid transition", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusConfirmed)

		w := f.serve(t, testAdminID, "admin", http.MethodPatch, path,
			map[string]any{"status": "completed"})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeBooking(t, w)
		assert.Equal(t, "completed", resp.Status)
	})

	t.Run("illegal transition conflicts", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusPending)

		w := f.serve(t, testAdminID, "admin", http.MethodPatch, path,
			map[string]any{"status": "completed"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown status fails binding", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusPending)

		w := f.serve(t, testAdminID, "admin", http.MethodPatch, path,
			map[string]any{"status": "bogus"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusConfirmed)

		w := f.serve(t, testClientID, "client", http.MethodPatch, path,
			map[string]any{"status": "completed"})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestDeleteBookingEndpoint(t *testing.T) {
	path := "/v1/bookings/" + testBookingID

	t.Run("admin deletes", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusCancelled)

		w := f.serve(t, testAdminID, "admin", http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("non-admin is rejected", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusCancelled)

		w := f.serve(t, testClientID, "client", http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestReceiptEndpoint(t *testing.T) {
	path := "/v1/bookings/" + testBookingID + "/receipt"

	t.Run("owner downloads a pdf", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusConfirmed)

		w := f.serve(t, testClientID, "client", http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")
		require.Greater(t, w.Body.Len(), 4)
		assert.Equal(t, "%PDF", w.Body.String()[:4])
	})

	t.Run("stranger cannot download", func(t *testing.T) {
		f := newFixture()
		f.seedBooking(booking.StatusConfirmed)

		w := f.serve(t, testStrangerID, "client", http.MethodGet, path, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
