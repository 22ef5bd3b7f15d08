// Package models defines the loyalty-card wallet records.
package models

import (
	"time"

	id "cardspace/pkg/domain"
	dErrors "cardspace/pkg/domain-errors"
)

// BarcodeFormat names the symbology of a scanned or entered barcode.
type BarcodeFormat string

const (
	FormatCode128 BarcodeFormat = "code128"
	FormatEAN13   BarcodeFormat = "ean13"
	FormatQR      BarcodeFormat = "qr"
	// FormatUnknown covers manual entry where the symbology was never seen.
	FormatUnknown BarcodeFormat = "unknown"
)

// ParseBarcodeFormat validates a raw format at the trust boundary. An empty
// value means manual entry and maps to FormatUnknown.
func ParseBarcodeFormat(raw string) (BarcodeFormat, error) {
	switch BarcodeFormat(raw) {
	case FormatCode128, FormatEAN13, FormatQR, FormatUnknown:
		return BarcodeFormat(raw), nil
	case "":
		return FormatUnknown, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported barcode format")
	}
}

// Card is one loyalty card in a user's wallet. The (UserID, Barcode) pair is
// unique: scanning the same card twice must not create a second entry.
type Card struct {
	ID            id.CardID     `json:"id"`
	UserID        id.UserID     `json:"-"`
	BrandID       id.BrandID    `json:"brand_id"`
	Barcode       string        `json:"barcode"`
	BarcodeFormat BarcodeFormat `json:"barcode_format"`
	Nickname      string        `json:"nickname,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
