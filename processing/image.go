package processing

import (
	"blog/config"
	"blog/storage"
	"blog/utils"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"path"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxImageSize   = 10 << 20
	MaxImagePixels = 40_000_000

	postsDir  = "posts"
	thumbsDir = "posts/thumbs"
)

var ErrNotAnImage = errors.New("not an image")

var extensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
}

type StoredImage struct {
	Path        string
	ThumbPath   string
	Width       uint16
	Height      uint16
	ThumbWidth  uint16
	ThumbHeight uint16
}

// StorePostImage validates an uploaded image and stores it along with a JPEG thumbnail
func StorePostImage(s storage.StorageAPI, reader io.Reader) (result StoredImage, err error) {
	data, err := io.ReadAll(io.LimitReader(reader, MaxImageSize+1))
	if err != nil {
		return result, err
	}
	if len(data) > MaxImageSize {
		return result, fmt.Errorf("%w: larger than %d bytes", ErrNotAnImage, MaxImageSize)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxImagePixels/cfg.Height {
		return result, fmt.Errorf("%w: %dx%d is over %d pixels", ErrNotAnImage, cfg.Width, cfg.Height, MaxImagePixels)
	}
	ext, ok := extensions[format]
	if !ok {
		return result, fmt.Errorf("%w: unsupported format %s", ErrNotAnImage, format)
	}

	var thumb bytes.Buffer
	converted, err := utils.CreateThumb(uint(thumbSize()), bytes.NewReader(data), &thumb)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	name := uuid.NewString()
	result = StoredImage{
		Path:        path.Join(postsDir, name+ext),
		Width:       converted.OldX,
		Height:      converted.OldY,
		ThumbWidth:  converted.NewX,
		ThumbHeight: converted.NewY,
	}
	result.ThumbPath = ThumbPath(result.Path)

	if _, err = s.Save(result.Path, "image/"+format, bytes.NewReader(data)); err != nil {
		return StoredImage{}, fmt.Errorf("save image: %w", err)
	}
	if _, err = s.Save(result.ThumbPath, "image/jpeg", &thumb); err != nil {
		DeletePostImage(s, result.Path)
		return StoredImage{}, fmt.Errorf("save thumbnail: %w", err)
	}
	return result, nil
}

// ThumbPath returns the thumbnail location for a stored image path
func ThumbPath(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	base := path.Base(imagePath)
	return path.Join(thumbsDir, strings.TrimSuffix(base, path.Ext(base))+".jpg")
}

func DeletePostImage(s storage.StorageAPI, imagePath string) {
	if imagePath == "" {
		return
	}
	for _, p := range []string{imagePath, ThumbPath(imagePath)} {
		if err := s.Delete(p); err != nil {
			log.Printf("Cannot delete %s: %v", p, err)
		}
	}
}

func thumbSize() int {
	if config.THUMB_SIZE > 0 {
		return config.THUMB_SIZE
	}
	return 640
}
