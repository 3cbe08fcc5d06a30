// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"path/filepath"
	"time"

	"github.com/corona10/goimagehash"
)

// ImageFileInfo is a photo identified by its path. Attributes are resolved
// on first use and kept for the lifetime of the value only.
type ImageFileInfo struct {
	FilePath string

	tools *PhotoTools

	captureDone bool
	captureTime time.Time
	captureErr  error

	digestDone bool
	digest     string
	digestErr  error

	visualDone bool
	visual     *goimagehash.ImageHash
	visualErr  error
}

func NewImageFileInfo(filePath string, tools *PhotoTools) *ImageFileInfo {
	return &ImageFileInfo{FilePath: filepath.Clean(filePath), tools: tools}
}

func (x *ImageFileInfo) CaptureTime() (time.Time, error) {
	if !x.captureDone {
		x.captureTime, x.captureErr = x.tools.Dates.CaptureTime(x.FilePath)
		x.captureDone = true
	}
	return x.captureTime, x.captureErr
}

// ContentDigest is the hex SHA-256 of the file bytes.
func (x *ImageFileInfo) ContentDigest() (string, error) {
	if !x.digestDone {
		x.digest, x.digestErr = x.tools.fs.CalculateSHA256(x.FilePath)
		x.digestDone = true
	}
	return x.digest, x.digestErr
}

func (x *ImageFileInfo) VisualDigest() (*goimagehash.ImageHash, error) {
	if !x.visualDone {
		x.visual, x.visualErr = x.tools.Prints.VisualDigest(x.FilePath)
		x.visualDone = true
	}
	return x.visual, x.visualErr
}

func (x *ImageFileInfo) ModTime() (time.Time, error) {
	return x.tools.fs.ModTime(x.FilePath)
}

// Shot is the take scan's view of the photo. A photo without a visual
// digest gets a nil Hash.
func (x *ImageFileInfo) Shot() Shot {
	s := Shot{Path: x.FilePath}
	s.Hash, _ = x.VisualDigest()
	t, err := x.CaptureTime()
	if err != nil {
		s.Hash = nil
	}
	s.Time = t
	return s
}
