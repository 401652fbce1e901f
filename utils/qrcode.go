package utils

import qrcode "github.com/skip2/go-qrcode"

// QREncoder renders content as a PNG QR code of Size pixels.
type QREncoder struct {
	Size int
}

func (e QREncoder) Encode(content string) ([]byte, error) {
	size := e.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}
