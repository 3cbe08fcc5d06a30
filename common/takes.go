// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"iter"
	"time"

	"github.com/corona10/goimagehash"
	"github.com/osintami/sloan/log"
)

// Shot is a photo with its capture time and visual digest already resolved.
type Shot struct {
	Path string
	Time time.Time
	Hash *goimagehash.ImageHash
}

// GroupTakes yields every member of each take with two or more shots.
//
// A take starts at an anchor shot. The next shot joins it while it was
// taken no more than window after the anchor and its distance to the anchor
// is at most factor; otherwise it becomes the new anchor. The anchor is
// yielded once, right before the first member that joins it.
//
// shots must be in chronological order. The window test uses the signed
// difference from the anchor, so unsorted input gives meaningless groups.
func GroupTakes(shots iter.Seq[Shot], factor int, window time.Duration) iter.Seq[string] {
	return func(yield func(string) bool) {
		var anchor Shot
		first := true
		anchorEmitted := false

		for s := range shots {
			if first || s.Time.Sub(anchor.Time) > window || Distance(anchor.Hash, s.Hash) > factor {
				first = false
				anchor = s
				anchorEmitted = false
				continue
			}

			if !anchorEmitted {
				anchorEmitted = true
				if !yield(anchor.Path) {
					return
				}
			}
			if !yield(s.Path) {
				return
			}
		}
	}
}

// Takes selects the photos that belong to a take: near identical shots
// taken close together, of which one or two are usually kept.
func (x *PhotoTools) Takes(factor int) Selector {
	return func(root string) iter.Seq[string] {
		return GroupTakes(x.shots(x.Hashable(root)), factor, x.Options.TakeWindow)
	}
}

func (x *PhotoTools) shots(paths iter.Seq[string]) iter.Seq[Shot] {
	return func(yield func(Shot) bool) {
		for p := range paths {
			s := x.Ref(p).Shot()
			if s.Hash == nil {
				log.Debug().Str("phototools", "takes").Str("file", p).Msg("no visual digest, starts a new take")
			}
			if !yield(s) {
				return
			}
		}
	}
}
