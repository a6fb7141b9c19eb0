package payment

import (
	"bytes"
	"fmt"
	"time"

	"blushmart-web/internal/format"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const qrSizePx = 256

// ReceiptNumber mints a display reference for a rendered receipt.
func ReceiptNumber() string {
	datePart := time.Now().UTC().Format("20060102-150405")
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("RCT-%s-%s", datePart, suffix)
}

// Receipt renders a PDF receipt for a verified order, embedding a QR code
// of the order id for pickup/return scans.
func Receipt(details OrderDetails, currencyCode, locale string) ([]byte, error) {
	if currencyCode == "" {
		currencyCode = details.Currency
	}

	qrPNG, err := qrcode.Encode(details.OrderID, qrcode.Medium, qrSizePx)
	if err != nil {
		return nil, fmt.Errorf("encode receipt qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Receipt")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		"Receipt No: " + ReceiptNumber(),
		"Order ID: " + details.OrderID,
		"Delivery Date: " + longDate(details.DeliveryDate),
		"Shipping Address: " + details.ShippingAddress,
		"Total Price: " + format.Currency(details.TotalPrice, currencyCode, locale),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("order-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("order-qr", 10, pdf.GetY()+6, 50, 50, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// longDate renders an order timestamp as a long-form date, falling back
// to the raw string when it is not a timestamp.
func longDate(raw string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Monday, January 2, 2006")
		}
	}
	return raw
}
