package share

import (
	"github.com/skip2/go-qrcode"
	"nexus/internal/pkg/errors"
)

const (
	MinQRSize = 128
	MaxQRSize = 2048
)

// QRCode encodes a share URL as a PNG. size 0 means 512px.
func QRCode(url string, size int) ([]byte, error) {
	if size == 0 {
		size = 512
	}
	if size < MinQRSize || size > MaxQRSize {
		return nil, &errors.ValidationError{Fields: map[string]string{"size": "must be between 128 and 2048"}}
	}

	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return qr.PNG(size)
}
