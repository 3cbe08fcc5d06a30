// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/djherbis/times"
	"github.com/osintami/sloan/log"
)

// DigestChunk is the read size used by CalculateSHA256.
const DigestChunk = 128 * 1024

var renameFunc = os.Rename

type FileSystem struct {
	BasePath string
}

var jpegExtensions = map[string]string{
	".jpg":  "jpg",
	".jpeg": "jpeg",
	".jpe":  "jpe",
}

// NewFileSystem fails when basePath is not an existing directory.
func NewFileSystem(basePath string) (*FileSystem, error) {
	fi, err := os.Stat(basePath)
	if err != nil {
		log.Error().Err(err).Str("phototools", "filesystem").Str("file", basePath).Msg("does not exist")
		return nil, &RootNotFoundError{Path: basePath, Err: err}
	}
	if !fi.IsDir() {
		return nil, &RootNotFoundError{Path: basePath, Err: errors.New("not a directory")}
	}
	return &FileSystem{BasePath: basePath}, nil
}

func IsJPEG(filePath string) bool {
	_, ok := jpegExtensions[strings.ToLower(filepath.Ext(filePath))]
	return ok
}

// IgnoreByName skips hidden entries, including Apple "._*" metadata files
// which look like good image files but aren't.
func (x *FileSystem) IgnoreByName(filePath string) (bool, string) {
	name := filepath.Base(filePath)
	if strings.HasPrefix(name, ".") {
		return true, name
	}
	return false, ""
}

// List walks BasePath recursively and returns the files accepted by match,
// sorted lexicographically. Unreadable entries are logged and skipped.
func (x *FileSystem) List(match func(filePath string) bool) []string {
	out := make([]string, 0)
	err := filepath.WalkDir(x.BasePath, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Error().Err(err).Str("phototools", "enumerate").Str("file", filePath).Msg("walk failed")
			if d != nil && d.IsDir() && filePath != x.BasePath {
				return filepath.SkipDir
			}
			return nil
		}
		if filePath != x.BasePath {
			if skip, _ := x.IgnoreByName(filePath); skip {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if d.IsDir() {
			return nil
		}
		if match(filePath) {
			out = append(out, filePath)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("phototools", "enumerate").Str("file", x.BasePath).Msg("directory traverse failed")
	}
	slices.Sort(out)
	return out
}

// ListDir is List restricted to the files directly inside BasePath.
func (x *FileSystem) ListDir(match func(filePath string) bool) []string {
	out := make([]string, 0)
	entries, err := os.ReadDir(x.BasePath)
	if err != nil {
		log.Error().Err(err).Str("phototools", "enumerate").Str("file", x.BasePath).Msg("read dir failed")
		return out
	}
	for _, e := range entries {
		filePath := filepath.Join(x.BasePath, e.Name())
		if e.IsDir() {
			continue
		}
		if skip, _ := x.IgnoreByName(filePath); skip {
			continue
		}
		if match(filePath) {
			out = append(out, filePath)
		}
	}
	slices.Sort(out)
	return out
}

// Seq is List as a lazy sequence. The sort still forces a full walk before
// the first element is produced.
func (x *FileSystem) Seq(match func(filePath string) bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, p := range x.List(match) {
			if !yield(p) {
				return
			}
		}
	}
}

// CalculateSHA256 hashes the file in DigestChunk reads straight from the
// descriptor.
func (x *FileSystem) CalculateSHA256(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		log.Error().Err(err).Str("phototools", "sha256").Str("file", filePath).Msg("file open failed")
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	buf := make([]byte, DigestChunk)
	for {
		n, err := file.Read(buf)
		if n > 0 {
			hash.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Error().Err(err).Str("phototools", "sha256").Str("file", filePath).Msg("read bytes failed")
			return "", err
		}
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// ModTime is the modification time in local time at one second resolution.
func (x *FileSystem) ModTime(filePath string) (time.Time, error) {
	ts, err := times.Stat(filePath)
	if err != nil {
		return time.Time{}, err
	}
	return ts.ModTime().In(time.Local).Truncate(time.Second), nil
}

func (x *FileSystem) Exists(filePath string) bool {
	fi, err := os.Stat(filePath)
	return err == nil && !fi.IsDir()
}

// MoveFile renames src to dst, falling back to copy and delete when the two
// live on different devices.
func (x *FileSystem) MoveFile(src, dst string) error {
	err := renameFunc(src, dst)
	if err == nil {
		return nil
	}
	if !isEXDEV(err) {
		return err
	}
	log.Debug().Str("phototools", "filesystem").Str("file", src).Msg("cross device, copying")
	if err := x.CopyFile(src, dst); err != nil {
		os.Remove(dst)
		return err
	}
	return x.DeleteFile(src)
}

func (x *FileSystem) CopyFile(inFile, outFile string) error {
	src, err := os.Open(inFile)
	if err != nil {
		log.Error().Err(err).Str("phototools", "filesystem").Str("file", inFile).Msg("open")
		return err
	}
	defer src.Close()

	fi, err := src.Stat()
	if err != nil {
		return err
	}

	dst, err := os.OpenFile(outFile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fi.Mode().Perm())
	if err != nil {
		log.Error().Err(err).Str("phototools", "filesystem").Str("file", outFile).Msg("create")
		return err
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil || written != fi.Size() {
		log.Error().Err(err).Str("phototools", "filesystem").Str("file", outFile).Msg("copy")
		if err == nil {
			err = errors.New("short copy")
		}
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	return os.Chtimes(outFile, fi.ModTime(), fi.ModTime())
}

func (x *FileSystem) DeleteFile(inFile string) error {
	err := os.Remove(inFile)
	if err != nil {
		log.Error().Err(err).Str("phototools", "filesystem").Str("file", inFile).Msg("delete")
		return err
	}
	return nil
}

// EmptyDirs returns the topmost directories under BasePath that hold no
// files at any depth. BasePath itself is never returned.
func (x *FileSystem) EmptyDirs() []string {
	out := make([]string, 0)
	entries, err := os.ReadDir(x.BasePath)
	if err != nil {
		return out
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(x.BasePath, e.Name())
		if empty, found := emptyDirs(sub); empty {
			out = append(out, sub)
		} else {
			out = append(out, found...)
		}
	}
	slices.Sort(out)
	return out
}

func emptyDirs(dir string) (bool, []string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, nil
	}
	isEmpty := true
	var found []string
	for _, e := range entries {
		if !e.IsDir() {
			isEmpty = false
			continue
		}
		sub := filepath.Join(dir, e.Name())
		empty, subFound := emptyDirs(sub)
		if empty {
			found = append(found, sub)
		} else {
			isEmpty = false
			found = append(found, subFound...)
		}
	}
	if isEmpty {
		return true, nil
	}
	return false, found
}
