// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"os"

	"github.com/corona10/goimagehash"
	"github.com/disintegration/imaging"
	"github.com/osintami/sloan/log"
	goexif "github.com/rwcarlsen/goexif/exif"
)

// ImageDecoder turns a file into a pixel buffer.
type ImageDecoder interface {
	Decode(filePath string) (image.Image, error)
}

var jpegSOI = []byte{0xff, 0xd8, 0xff}

// PixelDecoder decodes JPEG and the other formats imaging knows directly.
// Raw files are rendered from the largest JPEG preview the camera embedded
// in the container: the IFD1 thumbnail first, a byte scan second.
type PixelDecoder struct {
	IsRaw func(filePath string) bool
}

func (x *PixelDecoder) Decode(filePath string) (image.Image, error) {
	if x.IsRaw != nil && x.IsRaw(filePath) {
		img, err := x.decodeRaw(filePath)
		if err != nil {
			return nil, &DecodeError{Path: filePath, Err: err}
		}
		return img, nil
	}
	img, err := imaging.Open(filePath)
	if err != nil {
		return nil, &DecodeError{Path: filePath, Err: err}
	}
	return img, nil
}

func (x *PixelDecoder) decodeRaw(filePath string) (image.Image, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	if meta, err := goexif.Decode(bytes.NewReader(data)); err == nil {
		if thumb, err := meta.JpegThumbnail(); err == nil {
			if img, err := imaging.Decode(bytes.NewReader(thumb)); err == nil {
				return img, nil
			}
		}
	}

	return largestEmbeddedJPEG(data)
}

func largestEmbeddedJPEG(data []byte) (image.Image, error) {
	best, bestArea := -1, 0
	for off := 0; off < len(data); {
		i := bytes.Index(data[off:], jpegSOI)
		if i < 0 {
			break
		}
		start := off + i
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(data[start:]))
		if err == nil && cfg.Width*cfg.Height > bestArea {
			best, bestArea = start, cfg.Width*cfg.Height
		}
		off = start + len(jpegSOI)
	}
	if best < 0 {
		return nil, errors.New("no embedded preview")
	}
	return imaging.Decode(bytes.NewReader(data[best:]))
}

// Fingerprinter computes the visual digest of a photo.
type Fingerprinter struct {
	Decoder ImageDecoder
}

// VisualDigest is a 64 bit difference hash over a 9x8 luminance grid.
func (x *Fingerprinter) VisualDigest(filePath string) (*goimagehash.ImageHash, error) {
	img, err := x.Decoder.Decode(filePath)
	if err != nil {
		log.Error().Err(err).Str("phototools", "dhash").Str("file", filePath).Msg("could not open")
		return nil, &HashUnavailableError{Path: filePath, Err: err}
	}
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		log.Error().Err(err).Str("phototools", "dhash").Str("file", filePath).Msg("hash failed")
		return nil, &HashUnavailableError{Path: filePath, Err: err}
	}
	return hash, nil
}

// Distance is the Hamming distance between two digests. A missing digest on
// either side is farther than any threshold.
func Distance(a, b *goimagehash.ImageHash) int {
	if a == nil || b == nil {
		return MaxDistance
	}
	d, err := a.Distance(b)
	if err != nil {
		return MaxDistance
	}
	return d
}

// MaxDistance is larger than any distance between two 64 bit digests.
const MaxDistance = 1 << 30
