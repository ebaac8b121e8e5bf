// services/qrcode_service.go
package services

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// GenerateEventQR creates a PNG QR code pointing at an event's public
// page, for sharing the event offline.
func GenerateEventQR(applicationURL, eventID string, size int) ([]byte, error) {
	url := fmt.Sprintf("%s/events/%s", applicationURL, eventID)

	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
