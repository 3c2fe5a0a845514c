package store

import (
	"fmt"
	"sync"

	"github.com/landfinder/landfinder-terminal/pkg/files"
	"github.com/landfinder/landfinder-terminal/pkg/models"
	"go.uber.org/zap"
)

// KeyValue is a flat string-keyed store. Get reports ok=false for a missing key.
type KeyValue interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Open creates the backend selected in settings
func Open(settings models.StorageSettings, logger *zap.Logger) (KeyValue, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch settings.Backend {
	case models.BackendFile, "":
		path := settings.Path
		if path == "" {
			path = "storage.json"
		}
		logger.Debug("opening file store", zap.String("path", files.ResolvePath(path)))
		return NewFileKV(files.ResolvePath(path)), nil
	case models.BackendSQLite:
		path := settings.Path
		if path == "" {
			path = "storage.db"
		}
		logger.Debug("opening sqlite store", zap.String("path", files.ResolvePath(path)))
		return NewSQLiteKV(files.ResolvePath(path))
	case models.BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", settings.Backend)
	}
}

// MemoryKV keeps values in a map; nothing survives the process
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV creates an empty in-memory store
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryKV) Close() error {
	return nil
}
