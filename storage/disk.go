package storage

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

type DiskStorage struct {
	// BasePath is a directory that is writable by the current process
	BasePath  string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(basePath string) *DiskStorage {
	return &DiskStorage{
		BasePath: basePath,
		dirs:     make(map[string]bool, 10),
	}
}

func (s *DiskStorage) Name() string {
	return "disk:" + s.BasePath
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	s.dirs[dir] = true
	return nil
}

func (s *DiskStorage) getFullPath(path string) (string, error) {
	cleaned, err := CleanPath(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.BasePath, filepath.FromSlash(cleaned)), nil
}

func (s *DiskStorage) Save(path, mimeType string, reader io.Reader) (int64, error) {
	fileName, err := s.getFullPath(path)
	if err != nil {
		return 0, err
	}
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return 0, err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(file, reader)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return result, err
}

func (s *DiskStorage) Load(path string, writer io.Writer) (int64, error) {
	fileName, err := s.getFullPath(path)
	if err != nil {
		return 0, err
	}
	file, err := os.Open(fileName)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return io.Copy(writer, file)
}

func (s *DiskStorage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	fileName, err := s.getFullPath(path)
	if err != nil {
		http.NotFound(writer, request)
		return
	}
	if fi, err := os.Stat(fileName); err != nil || fi.IsDir() {
		http.NotFound(writer, request)
		return
	}
	http.ServeFile(writer, request, fileName)
}

func (s *DiskStorage) Delete(path string) error {
	fileName, err := s.getFullPath(path)
	if err != nil {
		return err
	}
	if err = os.Remove(fileName); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
