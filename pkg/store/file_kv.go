package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/landfinder/landfinder-terminal/pkg/files"
)

// FileKV stores every key in one JSON object file. Each write rewrites the
// whole file, so two processes sharing it can overwrite each other.
type FileKV struct {
	path string
	mu   sync.Mutex
}

// NewFileKV creates a store backed by path. The file is created on first write.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// Path returns the backing file
func (f *FileKV) Path() string {
	return f.path
}

func (f *FileKV) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		// A corrupt file is replaced rather than blocking every save
		values = make(map[string]string)
	}
	values[key] = value
	return f.write(values)
}

func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		values = make(map[string]string)
	}
	if _, ok := values[key]; !ok && err == nil {
		return nil
	}
	delete(values, key)
	return f.write(values)
}

func (f *FileKV) Close() error {
	return nil
}

func (f *FileKV) read() (map[string]string, error) {
	content, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read store file %s: %w", f.path, err)
	}

	values := make(map[string]string)
	if len(content) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(content, &values); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", f.path, err)
	}
	return values, nil
}

func (f *FileKV) write(values map[string]string) error {
	content, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}
	return files.WriteFileAtomic(f.path, content)
}
