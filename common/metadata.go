// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dsoprea/go-exif/v3"
	"github.com/osintami/sloan/log"
)

const (
	TagSoftware         uint16 = 305
	TagDateTimeOriginal uint16 = 36867

	ExifDateLayout = "2006:01:02 15:04:05"
)

// MetadataReader returns a single EXIF field as a string, or a
// *MetadataMissingError when the container or the field is absent.
type MetadataReader interface {
	ReadExifField(filePath string, tagID uint16) (string, error)
}

// ExifReader reads EXIF from JPEG files and from TIFF based raw containers,
// including the Olympus variant whose header carries a private magic.
type ExifReader struct{}

var olympusMagic = map[string][]byte{
	"IIRO": {'I', 'I', 0x2a, 0x00},
	"IIRS": {'I', 'I', 0x2a, 0x00},
	"MMOR": {'M', 'M', 0x00, 0x2a},
}

func (ExifReader) ReadExifField(filePath string, tagID uint16) (string, error) {
	rawExif, err := extractExif(filePath)
	if err != nil {
		return "", &MetadataMissingError{Path: filePath, TagID: tagID, Err: err}
	}

	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		log.Error().Err(err).Str("phototools", "exif").Str("file", filePath).Msg("exif parse")
		return "", &MetadataMissingError{Path: filePath, TagID: tagID, Err: err}
	}

	for _, tag := range tags {
		if tag.TagId == tagID {
			return strings.TrimRight(fmt.Sprintf("%v", tag.Value), "\x00 "), nil
		}
	}
	return "", &MetadataMissingError{Path: filePath, TagID: tagID}
}

func extractExif(filePath string) ([]byte, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	head := make([]byte, 4)
	_, err = io.ReadFull(f, head)
	f.Close()
	if err != nil {
		return nil, err
	}

	if magic, ok := olympusMagic[string(head)]; ok {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		copy(data, magic)
		return data, nil
	}
	return exif.SearchFileAndExtractExif(filePath)
}

func ParseExifDate(value string) (time.Time, error) {
	return time.ParseInLocation(ExifDateLayout, strings.TrimSpace(value), time.Local)
}

// RawFormat resolves the capture time of one proprietary raw layout.
type RawFormat interface {
	Extension() string
	// Hashable reports whether the format takes part in take grouping.
	Hashable() bool
	CaptureTime(filePath string) (time.Time, error)
}

// OffsetDateFormat reads an ASCII EXIF date stored at a fixed byte offset.
// The offset depends on camera firmware; files from other firmware resolve
// to garbage and fall back to the modification time.
type OffsetDateFormat struct {
	Ext     string
	Offset  int64
	Length  int
	InTakes bool
}

func (x *OffsetDateFormat) Extension() string { return x.Ext }
func (x *OffsetDateFormat) Hashable() bool    { return x.InTakes }

func (x *OffsetDateFormat) CaptureTime(filePath string) (time.Time, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	buf := make([]byte, x.Length)
	if _, err := f.ReadAt(buf, x.Offset); err != nil {
		return time.Time{}, err
	}
	return ParseExifDate(string(bytes.TrimRight(buf, "\x00")))
}

// ContainerDateFormat reads DateTimeOriginal through a MetadataReader.
type ContainerDateFormat struct {
	Ext     string
	Reader  MetadataReader
	InTakes bool
}

func (x *ContainerDateFormat) Extension() string { return x.Ext }
func (x *ContainerDateFormat) Hashable() bool    { return x.InTakes }

func (x *ContainerDateFormat) CaptureTime(filePath string) (time.Time, error) {
	value, err := x.Reader.ReadExifField(filePath, TagDateTimeOriginal)
	if err != nil {
		return time.Time{}, err
	}
	return ParseExifDate(value)
}

// NEF is the Nikon layout: date at byte 2964.
func NEF() RawFormat {
	return &OffsetDateFormat{Ext: ".nef", Offset: 2964, Length: 19, InTakes: true}
}

// ORF is the Olympus layout: a TIFF container with an EXIF sub IFD.
func ORF(reader MetadataReader) RawFormat {
	return &ContainerDateFormat{Ext: ".orf", Reader: reader}
}

// Resolver picks the capture time source by file extension.
type Resolver struct {
	FS     *FileSystem
	Reader MetadataReader
	raws   map[string]RawFormat
}

func NewResolver(reader MetadataReader, raws ...RawFormat) *Resolver {
	x := &Resolver{FS: &FileSystem{}, Reader: reader, raws: make(map[string]RawFormat)}
	for _, r := range raws {
		x.raws[strings.ToLower(r.Extension())] = r
	}
	return x
}

func (x *Resolver) RawFormat(filePath string) (RawFormat, bool) {
	r, ok := x.raws[strings.ToLower(filepath.Ext(filePath))]
	return r, ok
}

func (x *Resolver) IsRaw(filePath string) bool {
	_, ok := x.RawFormat(filePath)
	return ok
}

func (x *Resolver) IsHashableRaw(filePath string) bool {
	r, ok := x.RawFormat(filePath)
	return ok && r.Hashable()
}

// CaptureTime resolves when the photo was taken, at one second resolution.
func (x *Resolver) CaptureTime(filePath string) (time.Time, error) {
	if r, ok := x.RawFormat(filePath); ok {
		t, err := r.CaptureTime(filePath)
		if err == nil {
			return t, nil
		}
		log.Error().Err(err).Str("phototools", "date").Str("file", filePath).Msg("raw date failed, using mtime")
		return x.modTime(filePath)
	}

	if IsJPEG(filePath) {
		value, err := x.Reader.ReadExifField(filePath, TagDateTimeOriginal)
		if err != nil {
			log.Debug().Str("phototools", "date").Str("file", filePath).Msg("no exif date, using mtime")
			return x.modTime(filePath)
		}
		t, err := ParseExifDate(value)
		if err != nil {
			log.Error().Err(err).Str("phototools", "date").Str("file", filePath).Msg("time parse")
			return x.modTime(filePath)
		}
		return t, nil
	}

	return x.modTime(filePath)
}

func (x *Resolver) modTime(filePath string) (time.Time, error) {
	t, err := x.FS.ModTime(filePath)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", ErrUnresolvedDate, filePath, err)
	}
	return t, nil
}

// TimeDiff is a minus b in seconds.
func TimeDiff(a, b time.Time) float64 {
	return a.Sub(b).Seconds()
}
