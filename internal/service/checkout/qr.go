package checkout

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize = 256
	maxQRSize     = 1024
)

// ErrInvalidLink rejects QR requests for anything but a wa.me link.
var ErrInvalidLink = errors.New("not a wa.me link")

// QRCode renders link as a PNG so a customer in the shop can scan the order
// link with their phone.
func QRCode(link string, size int) ([]byte, error) {
	if !IsWhatsAppURL(link) {
		return nil, ErrInvalidLink
	}
	if size <= 0 || size > maxQRSize {
		size = DefaultQRSize
	}
	return qrcode.Encode(link, qrcode.Medium, size)
}
