// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"iter"
	"path/filepath"
	"time"

	"github.com/osintami/sloan/log"
)

type datedPhoto struct {
	path  string
	taken time.Time
}

// RawWithJPEG yields raws shot in raw+JPEG mode together with their JPEGs:
// for every raw, the JPEGs in the same directory with the exact same
// capture second first, then the raw itself. Raws without a match yield
// nothing.
func (x *PhotoTools) RawWithJPEG(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		dirs := NewFastCache[[]datedPhoto]()

		for raw := range x.Raws(root) {
			date, err := x.Dates.CaptureTime(raw)
			if err != nil {
				log.Error().Err(err).Str("phototools", "rawpair").Str("file", raw).Msg("no capture time")
				continue
			}

			dir := filepath.Dir(raw)
			jpegs := dirs.GetOrCompute(dir, func() []datedPhoto {
				return x.datedJPEGs(dir)
			})

			matched := false
			for _, j := range jpegs {
				if !j.taken.Equal(date) || !x.fs.Exists(j.path) {
					continue
				}
				matched = true
				if !yield(j.path) {
					return
				}
			}
			if matched {
				if !yield(raw) {
					return
				}
			}
		}
	}
}

func (x *PhotoTools) datedJPEGs(dir string) []datedPhoto {
	out := make([]datedPhoto, 0)
	for _, p := range (&FileSystem{BasePath: dir}).ListDir(IsJPEG) {
		t, err := x.Dates.CaptureTime(p)
		if err != nil {
			log.Error().Err(err).Str("phototools", "rawpair").Str("file", p).Msg("no capture time")
			continue
		}
		out = append(out, datedPhoto{path: p, taken: t})
	}
	return out
}
