// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"slices"
	"syscall"
	"testing"
	"time"
)

func TestEnumerate_SortedCaseInsensitiveDisjoint(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"x.jpe", "a/c.jpeg", "a/B.JPG", "z.ORF", "y.nef",
		"notes.txt", ".hidden.jpg", "a/._B.JPG", ".cache/p.jpg",
	} {
		writeFile(t, filepath.Join(root, name), []byte("x"))
	}
	tools := NewPhotoTools(DefaultOptions())

	jpegs := slices.Collect(tools.JPEGs(root))
	want := []string{
		filepath.Join(root, "a", "B.JPG"),
		filepath.Join(root, "a", "c.jpeg"),
		filepath.Join(root, "x.jpe"),
	}
	if !slices.Equal(jpegs, want) {
		t.Fatalf("jpegs = %q, want %q", jpegs, want)
	}

	raws := slices.Collect(tools.Raws(root))
	wantRaws := []string{filepath.Join(root, "y.nef"), filepath.Join(root, "z.ORF")}
	if !slices.Equal(raws, wantRaws) {
		t.Fatalf("raws = %q, want %q", raws, wantRaws)
	}

	if again := slices.Collect(tools.JPEGs(root)); !slices.Equal(again, jpegs) {
		t.Fatalf("second enumeration differs: %q", again)
	}
	for _, r := range raws {
		if slices.Contains(jpegs, r) {
			t.Fatalf("%q listed as both jpeg and raw", r)
		}
	}

	all := slices.Collect(tools.All(root))
	if !slices.Equal(all, append(slices.Clone(jpegs), raws...)) {
		t.Fatalf("all = %q", all)
	}

	hashable := slices.Collect(tools.Hashable(root))
	if !slices.Equal(hashable, append(slices.Clone(jpegs), filepath.Join(root, "y.nef"))) {
		t.Fatalf("hashable = %q", hashable)
	}
}

func TestEnumerate_MissingRootIsEmpty(t *testing.T) {
	tools := NewPhotoTools(DefaultOptions())
	if got := slices.Collect(tools.JPEGs(filepath.Join(t.TempDir(), "nope"))); len(got) != 0 {
		t.Fatalf("expected nothing, got %q", got)
	}
}

func TestNewFileSystem_RootNotFound(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewFileSystem(filepath.Join(dir, "missing")); !IsRootNotFound(err) {
		t.Fatalf("expected RootNotFoundError, got %T %v", err, err)
	}
	file := writeFile(t, filepath.Join(dir, "f"), []byte("x"))
	if _, err := NewFileSystem(file); !IsRootNotFound(err) {
		t.Fatalf("expected RootNotFoundError for a file, got %T %v", err, err)
	}
}

func TestCalculateSHA256_AcrossChunks(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), (3*DigestChunk+77)/16)
	path := writeFile(t, filepath.Join(t.TempDir(), "big.jpg"), data)

	got, err := (&FileSystem{}).CalculateSHA256(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := sha256.Sum256(data)
	if got != hex.EncodeToString(sum[:]) {
		t.Fatalf("digest mismatch: %s", got)
	}
}

func TestModTime_SecondResolution(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "a.jpg"), []byte("x"))
	tm := time.Date(2013, 8, 10, 12, 0, 0, 600_000_000, time.Local)
	setMtime(t, path, tm)

	got, err := (&FileSystem{}).ModTime(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(tm.Truncate(time.Second)) {
		t.Fatalf("mtime = %v, want %v", got, tm.Truncate(time.Second))
	}
}

func TestEmptyDirs_TopmostOnly(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"empty_dir", "empty/empty", "empty/empty2", "full/sub"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	writeFile(t, filepath.Join(root, "full", "a.jpg"), []byte("x"))

	got := (&FileSystem{BasePath: root}).EmptyDirs()
	want := []string{
		filepath.Join(root, "empty"),
		filepath.Join(root, "empty_dir"),
		filepath.Join(root, "full", "sub"),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("empty dirs = %q, want %q", got, want)
	}
}

func TestMoveFile_CrossDeviceCopies(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "a.jpg"), []byte("pixels"))
	tm := time.Date(2016, 11, 5, 10, 20, 30, 0, time.Local)
	setMtime(t, src, tm)
	dst := filepath.Join(dir, "out", "a.jpg")
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		t.Fatal(err)
	}

	old := renameFunc
	renameFunc = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	}
	defer func() { renameFunc = old }()

	if err := (&FileSystem{}).MoveFile(src, dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source should be gone, stat err = %v", err)
	}
	b, err := os.ReadFile(dst)
	if err != nil || string(b) != "pixels" {
		t.Fatalf("destination content %q, err %v", b, err)
	}
	fi, _ := os.Stat(dst)
	if !fi.ModTime().Equal(tm) {
		t.Fatalf("mtime not preserved: %v", fi.ModTime())
	}
}

func TestMoveFile_OtherRenameErrorsPropagate(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "a.jpg"), []byte("x"))

	old := renameFunc
	renameFunc = func(oldpath, newpath string) error { return os.ErrPermission }
	defer func() { renameFunc = old }()

	if err := (&FileSystem{}).MoveFile(src, filepath.Join(dir, "b.jpg")); err == nil {
		t.Fatalf("expected an error")
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source must stay: %v", err)
	}
}

func TestFastCache_ComputesOncePerKey(t *testing.T) {
	c := NewFastCache[[]string]()
	calls := 0
	fn := func() []string { calls++; return []string{"a"} }

	c.GetOrCompute("dir", fn)
	got := c.GetOrCompute("dir", fn)
	c.GetOrCompute("other", fn)

	if calls != 2 || len(got) != 1 || c.Len() != 2 {
		t.Fatalf("calls=%d got=%q len=%d", calls, got, c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("cache not cleared")
	}
}
