package docstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/pocketbase/pocketbase/tools/security"
)

// Firestore auto-ids are 20 characters from this alphabet.
const (
	autoIDLength   = 20
	autoIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Record is a stored document with its generated id.
type Record struct {
	ID   string
	Data Document
}

// Write is one entry of the memory store's write log.
type Write struct {
	Collection string
	ID         string
}

// MemoryStore keeps documents in process. It backs dry runs and tests.
type MemoryStore struct {
	mu          sync.Mutex
	now         func() time.Time
	collections map[string][]Record
	ids         map[string]struct{}
	writes      []Write
	failures    map[string]error
	closed      bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:         func() time.Time { return time.Now().UTC() },
		collections: make(map[string][]Record),
		ids:         make(map[string]struct{}),
		failures:    make(map[string]error),
	}
}

// SetClock replaces the clock used to resolve ServerTimestamp.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// FailOn makes every Add to collection fail with err.
func (m *MemoryStore) FailOn(collection string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[collection] = err
}

func (m *MemoryStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &WriteError{Collection: collection, Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return "", &WriteError{Collection: collection, Err: ErrStoreClosed}
	}
	if err := m.failures[collection]; err != nil {
		return "", &WriteError{Collection: collection, Err: err}
	}

	id := security.RandomStringWithAlphabet(autoIDLength, autoIDAlphabet)
	for {
		if _, taken := m.ids[id]; !taken {
			break
		}
		id = security.RandomStringWithAlphabet(autoIDLength, autoIDAlphabet)
	}
	m.ids[id] = struct{}{}

	data := resolveDocument(doc, m.now())
	m.collections[collection] = append(m.collections[collection], Record{ID: id, Data: data})
	m.writes = append(m.writes, Write{Collection: collection, ID: id})

	return id, nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MemoryStore) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Count returns the number of documents in collection.
func (m *MemoryStore) Count(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.collections[collection])
}

// Records returns the documents of collection in insertion order.
func (m *MemoryStore) Records(collection string) []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.collections[collection])
}

// Writes returns every successful insert in order.
func (m *MemoryStore) Writes() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.writes)
}

// resolveDocument deep-copies doc, replacing ServerTimestamp with now.
func resolveDocument(doc map[string]any, now time.Time) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = resolveValue(v, now)
	}
	return out
}

func resolveValue(v any, now time.Time) any {
	switch val := v.(type) {
	case serverTimestamp:
		return now
	case Document:
		return resolveDocument(val, now)
	case map[string]any:
		return resolveDocument(val, now)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = resolveValue(item, now)
		}
		return out
	case []float64:
		return slices.Clone(val)
	default:
		return v
	}
}
