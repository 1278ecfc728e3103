package sales

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/skip2/go-qrcode"
)

const receiptSize = 256

// ReceiptContent is the text encoded in a receipt QR code.
func ReceiptContent(view *SaleView) string {
	return fmt.Sprintf("CINEOPS-SALE|%s|session=%s|tickets=%d|total=%s",
		view.ID, view.SessionID, view.TicketCount, view.TotalPrice.StringFixed(2))
}

// ReceiptPNG renders the receipt QR code as a PNG of size x size pixels.
func ReceiptPNG(view *SaleView, size int) ([]byte, error) {
	qr, err := qrcode.New(ReceiptContent(view), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to build receipt QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(size)); err != nil {
		return nil, fmt.Errorf("failed to encode receipt QR code: %w", err)
	}
	return buf.Bytes(), nil
}
