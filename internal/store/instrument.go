// file: internal/store/instrument.go
// version: 1.0.0
// guid: 6e2a8c4d-1f7b-4b3e-9a6d-3c8f1b5e7a2d

package store

import "github.com/shopkit/storefront/internal/metrics"

// instrumentedStore counts store operations per collection. Errors are
// counted the same as successes; the interesting signal is traffic shape.
type instrumentedStore struct {
	inner Store
}

// Instrument wraps a Store with Prometheus operation counters.
func Instrument(inner Store) Store {
	return &instrumentedStore{inner: inner}
}

func (s *instrumentedStore) Close() error { return s.inner.Close() }

func (s *instrumentedStore) GetDocument(collection, id string) (Document, error) {
	metrics.IncStoreOperation(collection, "get")
	return s.inner.GetDocument(collection, id)
}

func (s *instrumentedStore) GetAllDocuments(collection string, limit, offset int) ([]Document, error) {
	metrics.IncStoreOperation(collection, "list")
	return s.inner.GetAllDocuments(collection, limit, offset)
}

func (s *instrumentedStore) AddDocument(collection string, data Document, id string) (string, error) {
	metrics.IncStoreOperation(collection, "add")
	return s.inner.AddDocument(collection, data, id)
}

func (s *instrumentedStore) SetDocument(collection, id string, data Document) error {
	metrics.IncStoreOperation(collection, "set")
	return s.inner.SetDocument(collection, id, data)
}

func (s *instrumentedStore) UpdateDocument(collection, id string, data Document) error {
	metrics.IncStoreOperation(collection, "update")
	return s.inner.UpdateDocument(collection, id, data)
}

func (s *instrumentedStore) DeleteDocument(collection, id string) error {
	metrics.IncStoreOperation(collection, "delete")
	return s.inner.DeleteDocument(collection, id)
}

func (s *instrumentedStore) DocumentExists(collection, id string) (bool, error) {
	metrics.IncStoreOperation(collection, "exists")
	return s.inner.DocumentExists(collection, id)
}

func (s *instrumentedStore) QueryDocuments(collection, field, operator string, value any) ([]Document, error) {
	metrics.IncStoreOperation(collection, "query")
	return s.inner.QueryDocuments(collection, field, operator, value)
}

func (s *instrumentedStore) BatchUpdateDocuments(collection string, updates map[string]Document) error {
	metrics.IncStoreOperation(collection, "batch_update")
	return s.inner.BatchUpdateDocuments(collection, updates)
}

func (s *instrumentedStore) BatchDeleteDocuments(collection string, ids []string) error {
	metrics.IncStoreOperation(collection, "batch_delete")
	return s.inner.BatchDeleteDocuments(collection, ids)
}
