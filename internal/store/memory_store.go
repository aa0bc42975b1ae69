// file: internal/store/memory_store.go
// version: 1.0.0
// guid: 1c6d9f2e-8a4b-4e7d-a3c6-5b8e1f4a7d0c

package store

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is a map-backed Store used in tests and local development.
// It mirrors PebbleStore semantics, including key-ordered listing.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Document)}
}

func (m *MemoryStore) Close() error { return nil }

func cloneDoc(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func (m *MemoryStore) GetDocument(collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.collections[collection][id]
	if !ok {
		return nil, nil
	}
	out := cloneDoc(doc)
	out["id"] = id
	return out, nil
}

func (m *MemoryStore) GetAllDocuments(collection string, limit, offset int) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.collections[collection]))
	for id := range m.collections[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	docs := []Document{}
	for i, id := range ids {
		if i < offset {
			continue
		}
		if limit > 0 && len(docs) >= limit {
			break
		}
		out := cloneDoc(m.collections[collection][id])
		out["id"] = id
		docs = append(docs, out)
	}
	return docs, nil
}

func (m *MemoryStore) AddDocument(collection string, data Document, id string) (string, error) {
	if id == "" {
		generated, err := newULID()
		if err != nil {
			return "", err
		}
		id = generated
	}
	return id, m.SetDocument(collection, id, data)
}

func (m *MemoryStore) SetDocument(collection, id string, data Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]Document)
	}
	stored := cloneDoc(data)
	delete(stored, "id")
	m.collections[collection][id] = stored
	return nil
}

func (m *MemoryStore) UpdateDocument(collection, id string, data Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.collections[collection][id]
	if !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	for k, v := range data {
		if k == "id" {
			continue
		}
		existing[k] = v
	}
	return nil
}

func (m *MemoryStore) DeleteDocument(collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.collections[collection], id)
	return nil
}

func (m *MemoryStore) DocumentExists(collection, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.collections[collection][id]
	return ok, nil
}

func (m *MemoryStore) QueryDocuments(collection, field, operator string, value any) ([]Document, error) {
	docs, err := m.GetAllDocuments(collection, 0, 0)
	if err != nil {
		return nil, err
	}
	results := []Document{}
	for _, doc := range docs {
		match, err := matchCondition(doc[field], operator, value)
		if err != nil {
			return nil, err
		}
		if match {
			results = append(results, doc)
		}
	}
	return results, nil
}

func (m *MemoryStore) BatchUpdateDocuments(collection string, updates map[string]Document) error {
	for id, data := range updates {
		if err := m.UpdateDocument(collection, id, data); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryStore) BatchDeleteDocuments(collection string, ids []string) error {
	for _, id := range ids {
		if err := m.DeleteDocument(collection, id); err != nil {
			return err
		}
	}
	return nil
}
