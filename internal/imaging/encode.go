package imaging

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// EncodedImage is a buffer rendered as base64 PNG for transport.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG renders b as a base64-encoded PNG.
func EncodePNG(b *Buffer) (*EncodedImage, error) {
	if b.Empty() {
		return nil, ErrEmptyImage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, b.ToImage()); err != nil {
		return nil, errors.Wrap(err, "failed to encode image")
	}

	return &EncodedImage{
		Width:       b.Width,
		Height:      b.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes b to path, choosing the encoder from the extension. Missing
// parent directories are created.
func Save(b *Buffer, path string) error {
	if b.Empty() {
		return ErrEmptyImage
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}
	if err := imaging.Save(b.ToImage(), path); err != nil {
		return errors.Wrap(err, "failed to save image")
	}
	return nil
}
