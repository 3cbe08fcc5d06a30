// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"image"
	"iter"
	"path/filepath"

	"github.com/osintami/sloan/log"
)

// SeamMetric is the mean over all rows of the squared RGB difference,
// averaged over the three channels, between the rightmost pixel of left and
// the leftmost pixel of right. Channels are in the 0..255 range. ok is false
// when the heights differ.
func SeamMetric(left, right image.Image) (metric float64, ok bool) {
	lb, rb := left.Bounds(), right.Bounds()
	height := lb.Dy()
	if height != rb.Dy() || height == 0 {
		return 0, false
	}

	sum := 0.0
	for i := 0; i < height; i++ {
		lr, lg, lbl := rgb8(left, lb.Max.X-1, lb.Min.Y+i)
		rr, rg, rbl := rgb8(right, rb.Min.X, rb.Min.Y+i)
		dr, dg, db := lr-rr, lg-rg, lbl-rbl
		sum += (dr*dr + dg*dg + db*db) / 3
	}
	return sum / float64(height), true
}

func rgb8(img image.Image, x, y int) (float64, float64, float64) {
	r, g, b, _ := img.At(x, y).RGBA()
	return float64(r >> 8), float64(g >> 8), float64(b >> 8)
}

// IsPanorama reports whether right likely continues left in a stitched
// panorama. Only the right edge of left is compared to the left edge of
// right, so swapping the arguments can change the answer.
func (x *PhotoTools) IsPanorama(left, right image.Image) bool {
	if left == nil || right == nil {
		return false
	}
	metric, ok := SeamMetric(left, right)
	return ok && metric < x.Options.PanoramaThreshold
}

// IsPanoramaFile is IsPanorama over files. An empty right path means there
// is no right hand candidate. Undecodable files are never panoramas.
func (x *PhotoTools) IsPanoramaFile(leftPath, rightPath string) bool {
	if rightPath == "" {
		return false
	}
	left := x.seamImage(leftPath)
	if left == nil {
		return false
	}
	return x.IsPanorama(left, x.seamImage(rightPath))
}

// seamImage decodes filePath, or returns nil when it cannot be decoded.
func (x *PhotoTools) seamImage(filePath string) image.Image {
	img, err := x.Prints.Decoder.Decode(filePath)
	if err != nil {
		log.Debug().Str("phototools", "panorama").Str("file", filePath).Msg("could not open")
		return nil
	}
	return img
}

// Panoramas tests every pair of consecutive JPEGs in the same directory
// and yields both sides of each pair that passes, each path at most once.
// Every JPEG is decoded once, before it can be yielded, so a consumer may
// move yielded files away while the scan goes on.
func (x *PhotoTools) Panoramas(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		var prevImg image.Image
		prev, lastYielded := "", ""
		for p := range x.JPEGs(root) {
			if prev != "" && filepath.Dir(prev) != filepath.Dir(p) {
				prev, prevImg = "", nil
			}
			img := x.seamImage(p)
			if prevImg != nil && x.IsPanorama(prevImg, img) {
				if prev != lastYielded {
					if !yield(prev) {
						return
					}
				}
				if !yield(p) {
					return
				}
				lastYielded = p
			}
			prev, prevImg = p, img
		}
	}
}
