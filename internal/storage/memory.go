package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryDoc struct {
	data      []byte
	updatedAt time.Time
}

// Memory is a map-backed DocumentStore for tests and dry runs.
type Memory struct {
	mu   sync.Mutex
	docs map[string]map[Collection]memoryDoc
	fail error
}

var _ DocumentStore = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]map[Collection]memoryDoc)}
}

// SetFail makes every following SetDocument call return err. A nil err
// restores normal writes.
func (m *Memory) SetFail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// GetDocument returns a copy of the user's document.
func (m *Memory) GetDocument(_ context.Context, userID string, c Collection) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[userID][c]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), doc.data...), nil
}

// SetDocument stores a copy of data.
func (m *Memory) SetDocument(_ context.Context, userID string, c Collection, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if m.docs[userID] == nil {
		m.docs[userID] = make(map[Collection]memoryDoc)
	}
	m.docs[userID][c] = memoryDoc{data: append([]byte(nil), data...), updatedAt: time.Now()}
	return nil
}

// ListDocuments returns the documents stored for a user.
func (m *Memory) ListDocuments(_ context.Context, userID string) ([]DocumentInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []DocumentInfo
	for c, doc := range m.docs[userID] {
		result = append(result, DocumentInfo{Collection: c, Size: len(doc.data), UpdatedAt: doc.updatedAt})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Collection < result[j].Collection })
	return result, nil
}
