// file: internal/store/store.go
// version: 1.3.0
// guid: 2d7f4b9c-8e1a-4c6d-b3f5-0a9e2c5d8b1f

package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Document is a schemaless record addressed by collection name and id.
// Documents returned by reads always carry their id under the "id" key.
type Document map[string]any

// ErrNotFound is returned by operations that require an existing document.
var ErrNotFound = errors.New("document not found")

// Store defines the document store gateway.
//
// Implementations raise on any failure; there is no retry or backoff logic.
// A missing document is (nil, nil) on reads and ErrNotFound on updates.
type Store interface {
	// Lifecycle
	Close() error

	// Basic CRUD
	GetDocument(collection, id string) (Document, error)
	GetAllDocuments(collection string, limit, offset int) ([]Document, error)
	AddDocument(collection string, data Document, id string) (string, error)
	SetDocument(collection, id string, data Document) error
	UpdateDocument(collection, id string, data Document) error
	DeleteDocument(collection, id string) error
	DocumentExists(collection, id string) (bool, error)

	// Queries
	QueryDocuments(collection, field, operator string, value any) ([]Document, error)

	// Batch operations
	BatchUpdateDocuments(collection string, updates map[string]Document) error
	BatchDeleteDocuments(collection string, ids []string) error
}

// Decode copies a document into a typed destination via JSON round-trip.
func Decode(doc Document, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// Encode converts a typed value into a Document.
func Encode(in any) (Document, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return doc, nil
}
