// Package receipt turns receipt photos into structured line items using an
// external vision model.
package receipt

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mmynk/splitapp/internal/models"
)

// MaxImageSize is the largest image accepted for extraction.
const MaxImageSize = 10 << 20

var (
	// ErrUnreadable means the model could not parse the image as a receipt.
	ErrUnreadable = errors.New("receipt could not be read")
	// ErrUnavailable means the extraction service failed or is shedding load.
	ErrUnavailable = errors.New("receipt extraction unavailable")
)

// Extractor reads a receipt image.
type Extractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) (*models.ReceiptExtraction, error)
}

// CheckImage validates an upload before it is sent anywhere. An empty
// mimeType is sniffed from the content.
func CheckImage(image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", &models.ValidationError{Field: "image", Reason: "image is required"}
	}
	if len(image) > MaxImageSize {
		return "", &models.ValidationError{Field: "image", Reason: "image exceeds 10 MiB"}
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	mimeType = strings.TrimSpace(strings.ToLower(mimeType))
	if !strings.HasPrefix(mimeType, "image/") {
		return "", &models.ValidationError{Field: "image", Reason: "unsupported content type " + mimeType}
	}
	return mimeType, nil
}
