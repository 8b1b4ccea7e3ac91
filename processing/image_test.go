package processing

import (
	"blog/config"
	"blog/storage"
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestStorePostImage(t *testing.T) {
	thumbSize := config.THUMB_SIZE
	config.THUMB_SIZE = 50
	t.Cleanup(func() { config.THUMB_SIZE = thumbSize })
	base := t.TempDir()
	s := storage.NewDiskStorage(base)

	stored, err := StorePostImage(s, bytes.NewReader(pngBytes(t, 200, 100)))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stored.Path, "posts/") || !strings.HasSuffix(stored.Path, ".png") {
		t.Errorf("Path = %q", stored.Path)
	}
	if stored.ThumbPath != ThumbPath(stored.Path) || !strings.HasPrefix(stored.ThumbPath, "posts/thumbs/") {
		t.Errorf("ThumbPath = %q", stored.ThumbPath)
	}
	if stored.Width != 200 || stored.Height != 100 || stored.ThumbWidth != 50 || stored.ThumbHeight != 25 {
		t.Errorf("sizes = %+v", stored)
	}

	var thumb bytes.Buffer
	if _, err := s.Load(stored.ThumbPath, &thumb); err != nil {
		t.Fatal(err)
	}
	if _, format, err := image.DecodeConfig(&thumb); err != nil || format != "jpeg" {
		t.Errorf("thumbnail format = %q, %v", format, err)
	}

	DeletePostImage(s, stored.Path)
	for _, p := range []string{stored.Path, stored.ThumbPath} {
		if _, err := os.Stat(filepath.Join(base, filepath.FromSlash(p))); !os.IsNotExist(err) {
			t.Errorf("%s still exists after delete", p)
		}
	}
}

// pngHeader is a valid 1x1 PNG whose header claims w x h pixels
func pngHeader(t *testing.T, w, h uint32) []byte {
	t.Helper()
	data := pngBytes(t, 1, 1)
	// IHDR: length(4) type(4) width(4) height(4) ... crc at 29
	binary.BigEndian.PutUint32(data[16:], w)
	binary.BigEndian.PutUint32(data[20:], h)
	binary.BigEndian.PutUint32(data[29:], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestStorePostImage_RejectsNonImages(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("definitely not a picture")},
		{"too many pixels", pngHeader(t, 12000, 12000)},
		{"just over the limit", pngHeader(t, 8000, 5001)},
		{"thin and too long", pngHeader(t, 40_000_001, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			s := storage.NewDiskStorage(base)
			_, err := StorePostImage(s, bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotAnImage) {
				t.Errorf("error = %v, want ErrNotAnImage", err)
			}
			entries, _ := os.ReadDir(base)
			if len(entries) != 0 {
				t.Errorf("rejected upload left %d entries in storage", len(entries))
			}
		})
	}
}

func TestThumbPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"posts/abc.png", "posts/thumbs/abc.jpg"},
		{"posts/abc.jpg", "posts/thumbs/abc.jpg"},
		{"posts/abc", "posts/thumbs/abc.jpg"},
	}
	for _, tt := range tests {
		if got := ThumbPath(tt.in); got != tt.want {
			t.Errorf("ThumbPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
