package memory

import (
	"sync"

	"github.com/garyjia/billed/internal/application/port"
)

// KVStore keeps session items in memory for the life of the process
type KVStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewKVStore creates an empty store
func NewKVStore() *KVStore {
	return &KVStore{items: make(map[string]string)}
}

// GetItem returns the stored value and whether the key exists
func (s *KVStore) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem stores value under key
func (s *KVStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Clear removes every item
func (s *KVStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]string)
	return nil
}

var _ port.KeyValueStore = (*KVStore)(nil)
