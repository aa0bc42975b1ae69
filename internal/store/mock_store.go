// file: internal/store/mock_store.go
// version: 1.1.0
// guid: 9e4b7d1a-6c3f-4a8e-b2d5-7f0c3a6e9b2d

package store

// MockStore is a simple mock implementation for testing services
type MockStore struct {
	CloseFunc                func() error
	GetDocumentFunc          func(collection, id string) (Document, error)
	GetAllDocumentsFunc      func(collection string, limit, offset int) ([]Document, error)
	AddDocumentFunc          func(collection string, data Document, id string) (string, error)
	SetDocumentFunc          func(collection, id string, data Document) error
	UpdateDocumentFunc       func(collection, id string, data Document) error
	DeleteDocumentFunc       func(collection, id string) error
	DocumentExistsFunc       func(collection, id string) (bool, error)
	QueryDocumentsFunc       func(collection, field, operator string, value any) ([]Document, error)
	BatchUpdateDocumentsFunc func(collection string, updates map[string]Document) error
	BatchDeleteDocumentsFunc func(collection string, ids []string) error
}

func (m *MockStore) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func (m *MockStore) GetDocument(collection, id string) (Document, error) {
	if m.GetDocumentFunc != nil {
		return m.GetDocumentFunc(collection, id)
	}
	return nil, nil
}

func (m *MockStore) GetAllDocuments(collection string, limit, offset int) ([]Document, error) {
	if m.GetAllDocumentsFunc != nil {
		return m.GetAllDocumentsFunc(collection, limit, offset)
	}
	return []Document{}, nil
}

func (m *MockStore) AddDocument(collection string, data Document, id string) (string, error) {
	if m.AddDocumentFunc != nil {
		return m.AddDocumentFunc(collection, data, id)
	}
	if id == "" {
		id = "mock-id"
	}
	return id, nil
}

func (m *MockStore) SetDocument(collection, id string, data Document) error {
	if m.SetDocumentFunc != nil {
		return m.SetDocumentFunc(collection, id, data)
	}
	return nil
}

func (m *MockStore) UpdateDocument(collection, id string, data Document) error {
	if m.UpdateDocumentFunc != nil {
		return m.UpdateDocumentFunc(collection, id, data)
	}
	return nil
}

func (m *MockStore) DeleteDocument(collection, id string) error {
	if m.DeleteDocumentFunc != nil {
		return m.DeleteDocumentFunc(collection, id)
	}
	return nil
}

func (m *MockStore) DocumentExists(collection, id string) (bool, error) {
	if m.DocumentExistsFunc != nil {
		return m.DocumentExistsFunc(collection, id)
	}
	return false, nil
}

func (m *MockStore) QueryDocuments(collection, field, operator string, value any) ([]Document, error) {
	if m.QueryDocumentsFunc != nil {
		return m.QueryDocumentsFunc(collection, field, operator, value)
	}
	return []Document{}, nil
}

func (m *MockStore) BatchUpdateDocuments(collection string, updates map[string]Document) error {
	if m.BatchUpdateDocumentsFunc != nil {
		return m.BatchUpdateDocumentsFunc(collection, updates)
	}
	return nil
}

func (m *MockStore) BatchDeleteDocuments(collection string, ids []string) error {
	if m.BatchDeleteDocumentsFunc != nil {
		return m.BatchDeleteDocumentsFunc(collection, ids)
	}
	return nil
}
