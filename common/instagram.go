// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"iter"
	"strings"
)

// Instagram yields JPEGs whose EXIF Software field names Instagram, i.e.
// copies saved back from the app.
func (x *PhotoTools) Instagram(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for p := range x.JPEGs(root) {
			software, err := x.Reader.ReadExifField(p, TagSoftware)
			if err != nil || !strings.Contains(software, "Instagram") {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}
