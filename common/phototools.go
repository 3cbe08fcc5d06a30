// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"iter"
	"time"
)

type Options struct {
	// TakeWindow is the longest gap from a take's first photo to a member.
	TakeWindow        time.Duration
	// PanoramaThreshold bounds the mean squared seam difference.
	PanoramaThreshold float64
}

func DefaultOptions() Options {
	return Options{
		TakeWindow:        180 * time.Second,
		PanoramaThreshold: 256,
	}
}

// Selector lists the files under root an operation wants archived.
type Selector func(root string) iter.Seq[string]

// PhotoTools wires the metadata, digest and decode collaborators every
// selector needs. It holds no per-run state.
type PhotoTools struct {
	Options Options
	Reader  MetadataReader
	Dates   *Resolver
	Prints  *Fingerprinter
	fs      *FileSystem
}

func NewPhotoTools(opts Options) *PhotoTools {
	return New(opts, ExifReader{}, nil)
}

// New builds PhotoTools around the given reader and decoder. A nil decoder
// selects PixelDecoder.
func New(opts Options, reader MetadataReader, decoder ImageDecoder) *PhotoTools {
	dates := NewResolver(reader, NEF(), ORF(reader))
	if decoder == nil {
		decoder = &PixelDecoder{IsRaw: dates.IsRaw}
	}
	return &PhotoTools{
		Options: opts,
		Reader:  reader,
		Dates:   dates,
		Prints:  &Fingerprinter{Decoder: decoder},
		fs:      dates.FS,
	}
}

func (x *PhotoTools) Ref(filePath string) *ImageFileInfo {
	return NewImageFileInfo(filePath, x)
}

// JPEGs lists jpg, jpeg and jpe files under root, recursively and sorted.
func (x *PhotoTools) JPEGs(root string) iter.Seq[string] {
	return (&FileSystem{BasePath: root}).Seq(IsJPEG)
}

// Raws lists the files of every registered raw format under root, sorted.
func (x *PhotoTools) Raws(root string) iter.Seq[string] {
	return (&FileSystem{BasePath: root}).Seq(x.Dates.IsRaw)
}

// All is JPEGs followed by Raws.
func (x *PhotoTools) All(root string) iter.Seq[string] {
	return concat(x.JPEGs(root), x.Raws(root))
}

// Hashable is JPEGs followed by the raws whose format takes part in takes.
func (x *PhotoTools) Hashable(root string) iter.Seq[string] {
	return concat(x.JPEGs(root), (&FileSystem{BasePath: root}).Seq(x.Dates.IsHashableRaw))
}

func concat(seqs ...iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, seq := range seqs {
			for p := range seq {
				if !yield(p) {
					return
				}
			}
		}
	}
}
