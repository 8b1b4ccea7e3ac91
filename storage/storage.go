package storage

import (
	"blog/config"
	"errors"
	"io"
	"log"
	"net/http"
	"path"
	"strings"
)

var ErrInvalidPath = errors.New("invalid storage path")

type StorageAPI interface {
	Name() string
	Save(path, mimeType string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
}

var (
	defaultStorage StorageAPI
)

// Init selects S3 when a bucket is configured, otherwise the local media dir
func Init() {
	if config.S3_BUCKET != "" {
		s, err := NewS3Storage(config.S3_BUCKET, config.S3_PREFIX)
		if err != nil {
			panic(err)
		}
		defaultStorage = s
	} else {
		defaultStorage = NewDiskStorage(config.MEDIA_DIR)
	}
	log.Printf("Media storage: %s\n", defaultStorage.Name())
}

func SetDefaultStorage(s StorageAPI) {
	defaultStorage = s
}

func GetDefaultStorage() StorageAPI {
	if defaultStorage == nil {
		panic("no storage available")
	}
	return defaultStorage
}

// CleanPath normalizes a relative object path, rejecting anything that escapes the root
func CleanPath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\x00") {
		return "", ErrInvalidPath
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}
	cleaned := path.Clean(p)
	if cleaned == "." {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
