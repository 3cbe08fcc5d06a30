// Copyright © 2025 OSINTAMI. This is not yours.
package common

import (
	"path/filepath"
	"testing"
	"time"
)

func TestCaptureTime_Formats(t *testing.T) {
	dir := t.TempDir()
	img := gradient(32, 16, false)
	tools := NewPhotoTools(DefaultOptions())

	noExif := writeJPEG(t, filepath.Join(dir, "plain.jpg"), img, "", "")
	mtime := time.Date(2013, 8, 10, 12, 34, 56, 700_000_000, time.Local)
	setMtime(t, noExif, mtime)

	shortNEF := writeFile(t, filepath.Join(dir, "short.nef"), []byte("too short"))
	setMtime(t, shortNEF, mtime)

	other := writeFile(t, filepath.Join(dir, "notes.txt"), []byte("x"))
	setMtime(t, other, mtime)

	cases := []struct {
		name string
		path string
		want time.Time
	}{
		{"jpeg exif", writeJPEG(t, filepath.Join(dir, "chess.jpg"), img, "2013:08:17 09:15:02", ""), localTime(t, "2013:08:17 09:15:02")},
		{"jpeg exif without date", writeJPEG(t, filepath.Join(dir, "soft.jpeg"), img, "", "GIMP 2.10"), time.Time{}},
		{"jpeg no exif", noExif, mtime.Truncate(time.Second)},
		{"nef", writeFile(t, filepath.Join(dir, "balloon.NEF"), nefBytes("2016:11:05 10:20:30", nil)), localTime(t, "2016:11:05 10:20:30")},
		{"orf", writeFile(t, filepath.Join(dir, "nuthatch.orf"), orfBytes("2019:10:12 07:08:09")), localTime(t, "2019:10:12 07:08:09")},
		{"nef too short", shortNEF, mtime.Truncate(time.Second)},
		{"other extension", other, mtime.Truncate(time.Second)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want := tc.want
			if want.IsZero() {
				setMtime(t, tc.path, mtime)
				want = mtime.Truncate(time.Second)
			}
			got, err := tools.Dates.CaptureTime(tc.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(want) {
				t.Fatalf("capture time = %v, want %v", got, want)
			}
		})
	}
}

func TestCaptureTime_RawAndJPEGAgree(t *testing.T) {
	dir := t.TempDir()
	tools := NewPhotoTools(DefaultOptions())
	jpg := writeJPEG(t, filepath.Join(dir, "zanaves.jpg"), gradient(16, 16, false), "2019:10:12 07:08:09", "")
	orf := writeFile(t, filepath.Join(dir, "zanaves.orf"), orfBytes("2019:10:12 07:08:09"))

	a, err := tools.Dates.CaptureTime(jpg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := tools.Dates.CaptureTime(orf)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) || TimeDiff(a, b) != 0 {
		t.Fatalf("jpeg %v and orf %v differ", a, b)
	}
}

func TestCaptureTime_Unresolved(t *testing.T) {
	tools := NewPhotoTools(DefaultOptions())
	_, err := tools.Dates.CaptureTime(filepath.Join(t.TempDir(), "gone.jpg"))
	if err == nil {
		t.Fatalf("expected an error")
	}
}

func TestReadExifField_Missing(t *testing.T) {
	dir := t.TempDir()
	plain := writeJPEG(t, filepath.Join(dir, "plain.jpg"), gradient(16, 16, false), "", "")
	dated := writeJPEG(t, filepath.Join(dir, "dated.jpg"), gradient(16, 16, false), "2013:08:17 09:15:02", "")

	if _, err := (ExifReader{}).ReadExifField(plain, TagDateTimeOriginal); !IsMetadataMissing(err) {
		t.Fatalf("expected MetadataMissingError for no exif, got %T %v", err, err)
	}
	if _, err := (ExifReader{}).ReadExifField(dated, TagSoftware); !IsMetadataMissing(err) {
		t.Fatalf("expected MetadataMissingError for absent tag, got %T %v", err, err)
	}
	got, err := (ExifReader{}).ReadExifField(dated, TagDateTimeOriginal)
	if err != nil || got != "2013:08:17 09:15:02" {
		t.Fatalf("got %q, err %v", got, err)
	}
}

func TestTimeDiff_Signed(t *testing.T) {
	a := localTime(t, "2016:11:05 10:20:30")
	b := localTime(t, "2016:11:05 10:20:31")
	if TimeDiff(b, a) != 1 || TimeDiff(a, b) != -1 {
		t.Fatalf("TimeDiff(b, a)=%v TimeDiff(a, b)=%v", TimeDiff(b, a), TimeDiff(a, b))
	}
}
