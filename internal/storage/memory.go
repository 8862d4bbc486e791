package storage

import (
	"context"
	"sync"

	"github.com/yourname/timebalance/internal"
)

// MemoryStorage keeps encoded documents in a map, so callers never share
// maps with what is stored.
type MemoryStorage struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{docs: make(map[string][]byte)}
}

func (m *MemoryStorage) Get(ctx context.Context, userKey string) (*internal.UserDocument, error) {
	m.mu.RLock()
	data, ok := m.docs[userKey]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeDocument(data)
}

func (m *MemoryStorage) Set(ctx context.Context, userKey string, doc *internal.UserDocument) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[userKey] = data
	m.mu.Unlock()
	return nil
}

// SetRaw stores bytes as-is, bypassing encoding.
func (m *MemoryStorage) SetRaw(userKey string, data []byte) {
	m.mu.Lock()
	m.docs[userKey] = append([]byte(nil), data...)
	m.mu.Unlock()
}

func (m *MemoryStorage) Close() error { return nil }

var _ DocumentStore = (*MemoryStorage)(nil)
