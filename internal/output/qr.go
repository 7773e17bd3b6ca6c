package output

import (
	"fmt"
	"io"

	"github.com/skip2/go-qrcode"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/fileutil"
)

// QRConfig configures QR code rendering.
type QRConfig struct {
	// Level is the error correction level.
	Level qrcode.RecoveryLevel

	// Invert swaps dark and light modules, for light-on-dark terminals.
	Invert bool

	// PNGSize is the image edge in pixels for WriteQRPNG.
	PNGSize int
}

// DefaultQRConfig returns defaults for addresses and invoices.
func DefaultQRConfig() QRConfig {
	return QRConfig{
		Level:   qrcode.Medium,
		Invert:  false,
		PNGSize: 256,
	}
}

// CanRenderQR checks if the output writer is a terminal suitable for QR rendering.
func CanRenderQR(w io.Writer) bool {
	return IsTerminal(w)
}

// QRString renders data as a block-character QR code.
func QRString(data string, cfg QRConfig) (string, error) {
	code, err := qrcode.New(data, cfg.Level)
	if err != nil {
		return "", fmt.Errorf("encoding qr code: %w", err)
	}
	return code.ToSmallString(cfg.Invert), nil
}

// RenderQR writes a QR code for data when w is a terminal. Other writers
// get nothing.
func RenderQR(w io.Writer, data string, cfg QRConfig) error {
	if !CanRenderQR(w) {
		return nil
	}
	s, err := QRString(data, cfg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

// WriteQRPNG saves a QR code for data as a PNG image at path.
func WriteQRPNG(path, data string, cfg QRConfig) error {
	code, err := qrcode.New(data, cfg.Level)
	if err != nil {
		return fmt.Errorf("encoding qr code: %w", err)
	}
	size := cfg.PNGSize
	if size <= 0 {
		size = DefaultQRConfig().PNGSize
	}
	png, err := code.PNG(size)
	if err != nil {
		return fmt.Errorf("rendering qr png: %w", err)
	}
	return fileutil.WriteAtomic(path, png, 0o644)
}
