// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"errors"
	"fmt"
)

// ErrUnresolvedDate is returned when no capture time source worked,
// including the filesystem modification time.
var ErrUnresolvedDate = errors.New("capture date unresolved")

// DecodeError means the file could not be decoded into pixels.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// HashUnavailableError means no visual digest could be computed for a file.
type HashUnavailableError struct {
	Path string
	Err  error
}

func (e *HashUnavailableError) Error() string {
	return fmt.Sprintf("visual digest unavailable for %q: %v", e.Path, e.Err)
}

func (e *HashUnavailableError) Unwrap() error { return e.Err }

// MetadataMissingError means the file has no EXIF block or the field is absent.
type MetadataMissingError struct {
	Path  string
	TagID uint16
	Err   error
}

func (e *MetadataMissingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exif tag %d missing in %q: %v", e.TagID, e.Path, e.Err)
	}
	return fmt.Sprintf("exif tag %d missing in %q", e.TagID, e.Path)
}

func (e *MetadataMissingError) Unwrap() error { return e.Err }

func IsMetadataMissing(err error) bool {
	var e *MetadataMissingError
	return errors.As(err, &e)
}

// MoveError is a per-file archive failure. It never aborts a run.
type MoveError struct {
	Src string
	Dst string
	Err error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %q -> %q: %v", e.Src, e.Dst, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

// RootNotFoundError is fatal: there is nothing to enumerate.
type RootNotFoundError struct {
	Path string
	Err  error
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("root %q not found: %v", e.Path, e.Err)
}

func (e *RootNotFoundError) Unwrap() error { return e.Err }

func IsRootNotFound(err error) bool {
	var e *RootNotFoundError
	return errors.As(err, &e)
}
