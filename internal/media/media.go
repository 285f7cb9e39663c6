// Package media turns photos into the data-URL strings stored on notes.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// DataURLPrefix starts every payload produced by EncodeImage.
const DataURLPrefix = "data:image/jpeg;base64,"

type Options struct {
	MaxDimension int
	Quality      int
}

// EncodeImage decodes r (JPEG, PNG, GIF, BMP or TIFF), shrinks it to fit
// within MaxDimension on its longer side and returns it as a base64 JPEG data
// URL. Images already within bounds are re-encoded but not resized.
func EncodeImage(r io.Reader, opts Options) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	if opts.MaxDimension > 0 {
		b := img.Bounds()
		if b.Dx() > opts.MaxDimension || b.Dy() > opts.MaxDimension {
			img = imaging.Fit(img, opts.MaxDimension, opts.MaxDimension, imaging.Lanczos)
		}
	}

	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = 70
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return "", fmt.Errorf("encoding jpeg: %w", err)
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURL returns the raw bytes of a payload produced by EncodeImage.
func DecodeDataURL(payload string) ([]byte, error) {
	data, ok := strings.CutPrefix(payload, DataURLPrefix)
	if !ok {
		return nil, fmt.Errorf("not a jpeg data url")
	}
	return base64.StdEncoding.DecodeString(data)
}
