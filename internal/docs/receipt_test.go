package docs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "120.50 THB", FormatAmount(12050, "thb"))
	assert.Equal(t, "0.01 THB", FormatAmount(1, "THB"))
	assert.Equal(t, "100.00 USD", FormatAmount(10000, "usd"))
}

func TestBuildBookingReceipt(t *testing.T) {
	data := ReceiptData{
		BookingID:   "a1b2c3d4-e5f6-7890-abcd-ef1234567890",
		ClientName:  "Alice",
		ClientEmail: "alice@example.com",
		SpotName:    "Central Garage B2",
		SpotAddress: "88 Sukhumvit Rd, Bangkok",
		StartTime:   time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC),
		Amount:      10000,
		Currency:    "thb",
		Status:      "confirmed",
		PaymentID:   "payment-1",
		IssuedAt:    time.Date(2025, 6, 1, 16, 5, 0, 0, time.UTC),
	}

	pdf, filename, err := BuildBookingReceipt(data)
	require.NoError(t, err)

	assert.Equal(t, "RECEIPT_A1B2C3D4.pdf", filename)
	require.Greater(t, len(pdf), 4)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestBuildBookingReceiptWithoutPayment(t *testing.T) {
	pdf, _, err := BuildBookingReceipt(ReceiptData{
		BookingID: "short",
		Amount:    500,
		Currency:  "thb",
		IssuedAt:  time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
