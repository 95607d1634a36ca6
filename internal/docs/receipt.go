package docs

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
)

// ReceiptData carries everything printed on a booking receipt.
type ReceiptData struct {
	BookingID   string
	ClientName  string
	ClientEmail string
	SpotName    string
	SpotAddress string
	StartTime   time.Time
	EndTime     time.Time
	Amount      int64 // smallest currency unit
	Currency    string
	Status      string
	PaymentID   string
	IssuedAt    time.Time
}

// FormatAmount renders an amount in the smallest currency unit as a
// human readable string, e.g. 12050 thb -> "120.50 THB".
func FormatAmount(amount int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(amount)/100, strings.ToUpper(currency))
}

// BuildBookingReceipt renders a one page PDF receipt and returns the
// document bytes together with a suggested filename.
func BuildBookingReceipt(d ReceiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Carparkly")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, "Booking Receipt")
	pdf.Ln(12)

	rows := [][2]string{
		{"Receipt No.", receiptNumber(d.BookingID)},
		{"Issued", d.IssuedAt.Format("2006-01-02 15:04 MST")},
		{"Client", d.ClientName},
		{"Email", d.ClientEmail},
		{"Parking Spot", d.SpotName},
		{"Address", d.SpotAddress},
		{"From", d.StartTime.Format("2006-01-02 15:04 MST")},
		{"Until", d.EndTime.Format("2006-01-02 15:04 MST")},
		{"Status", d.Status},
	}
	if d.PaymentID != "" {
		rows = append(rows, [2]string{"Payment Ref.", d.PaymentID})
	}
	rows = append(rows, [2]string{"Total", FormatAmount(d.Amount, d.Currency)})

	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 8, row[1], "", "L", false)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "This receipt was generated electronically and is valid without a signature.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render receipt pdf: %w", err)
	}

	filename := fmt.Sprintf("RECEIPT_%s.pdf", receiptNumber(d.BookingID))

	return buf.Bytes(), filename, nil
}

// receiptNumber derives a short reference from the booking ID.
func receiptNumber(bookingID string) string {
	id := strings.ReplaceAll(bookingID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
