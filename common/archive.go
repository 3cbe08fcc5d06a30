// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"os"
	"path/filepath"

	"github.com/lestrrat-go/strftime"
	"github.com/osintami/sloan/log"
)

// DefaultArchiveFormat files photos as "2019/10 October".
const DefaultArchiveFormat = "%Y/%m %B"

type ArchiveStats struct {
	Moved   int
	Skipped int
	Failed  int
	Pruned  []string
}

// Move drains sel(srcPath) and moves every file to
// dstPath/<capture time formatted by format>/<base name>. Existing
// destinations are skipped and per file failures are logged; neither stops
// the run. Afterwards directories under srcPath left without files are
// removed. Only a missing srcPath or a bad format is returned as an error,
// before anything is touched.
func (x *PhotoTools) Move(sel Selector, srcPath, dstPath, format string) (ArchiveStats, error) {
	stats := ArchiveStats{Pruned: make([]string, 0)}

	fs, err := NewFileSystem(srcPath)
	if err != nil {
		return stats, err
	}
	pattern, err := strftime.New(format)
	if err != nil {
		return stats, err
	}

	for src := range sel(srcPath) {
		date, err := x.Dates.CaptureTime(src)
		if err != nil {
			log.Error().Err(err).Str("phototools", "archive").Str("file", src).Msg("no capture time")
			stats.Failed++
			continue
		}

		dst := filepath.Join(dstPath, pattern.FormatString(date), filepath.Base(src))
		if _, err := os.Stat(dst); err == nil {
			log.Info().Str("phototools", "archive").Str("file", src).Str("dst", dst).Msg("skip, destination exists")
			stats.Skipped++
			continue
		}

		if err := x.moveOne(fs, src, dst); err != nil {
			log.Error().Err(err).Str("phototools", "archive").Str("file", src).Str("dst", dst).Msg("could not move")
			stats.Failed++
			continue
		}
		log.Debug().Str("phototools", "archive").Str("file", src).Str("dst", dst).Msg("moved")
		stats.Moved++
	}

	for _, d := range fs.EmptyDirs() {
		if err := removeEmptyTree(d); err != nil {
			log.Error().Err(err).Str("phototools", "archive").Str("file", d).Msg("could not remove empty directory")
			continue
		}
		stats.Pruned = append(stats.Pruned, d)
	}
	return stats, nil
}

func (x *PhotoTools) moveOne(fs *FileSystem, src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return &MoveError{Src: src, Dst: dst, Err: err}
	}
	if err := fs.MoveFile(src, dst); err != nil {
		return &MoveError{Src: src, Dst: dst, Err: err}
	}
	return nil
}

// removeEmptyTree removes dir and its subdirectories. os.Remove refuses
// non empty directories, so files that appeared meanwhile survive.
func removeEmptyTree(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := removeEmptyTree(filepath.Join(dir, e.Name())); err != nil {
				return err
			}
		}
	}
	return os.Remove(dir)
}
