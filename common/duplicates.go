// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"iter"

	"github.com/osintami/sloan/log"
)

// Duplicates yields JPEGs that repeat an earlier JPEG with the same
// modification second and the same content digest. Only the later copy is
// yielded. Copies whose mtime was not preserved are missed; use
// DuplicatesByHash for those.
func (x *PhotoTools) Duplicates(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[int64]*ImageFileInfo)
		for p := range x.JPEGs(root) {
			ref := x.Ref(p)
			mtime, err := ref.ModTime()
			if err != nil {
				log.Error().Err(err).Str("phototools", "duplicates").Str("file", p).Msg("stat failed")
				continue
			}

			first, found := seen[mtime.Unix()]
			if !found {
				seen[mtime.Unix()] = ref
				continue
			}

			a, err := first.ContentDigest()
			if err != nil {
				continue
			}
			b, err := ref.ContentDigest()
			if err != nil {
				continue
			}
			if a == b {
				log.Debug().Str("phototools", "duplicates").Str("file", p).Str("original", first.FilePath).Msg("duplicate")
				if !yield(p) {
					return
				}
			}
		}
	}
}

// DuplicatesByHash yields JPEGs whose content digest was already seen.
// Slower than Duplicates, but independent of file times.
func (x *PhotoTools) DuplicatesByHash(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for p := range x.JPEGs(root) {
			digest, err := x.Ref(p).ContentDigest()
			if err != nil {
				continue
			}
			if _, found := seen[digest]; found {
				log.Debug().Str("phototools", "duplicates").Str("file", p).Str("sha256", digest).Msg("duplicate")
				if !yield(p) {
					return
				}
				continue
			}
			seen[digest] = struct{}{}
		}
	}
}
