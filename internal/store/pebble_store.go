// file: internal/store/pebble_store.go
// version: 1.4.0
// guid: 5a0c3e8d-2b6f-4d1a-9e7c-4f8b1d3a6c9e

package store

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/pebble/v2"
	ulid "github.com/oklog/ulid/v2"
)

// PebbleStore implements the Store interface using PebbleDB (LSM key-value store)
//
// Key Schema:
// - doc:<collection>:<id> -> document JSON (without the "id" field)
//
// Collection scans iterate the half-open range [doc:<collection>:, doc:<collection>;)
// which works because ';' sorts immediately after ':'. Iteration order is the
// byte order of document ids, which for ULID ids is also creation order.
type PebbleStore struct {
	db *pebble.DB
}

// NewPebbleStore opens (or creates) a PebbleDB-backed document store.
func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open PebbleDB: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

// Close closes the database
func (p *PebbleStore) Close() error {
	return p.db.Close()
}

// Helper functions

func docKey(collection, id string) []byte {
	return []byte(fmt.Sprintf("doc:%s:%s", collection, id))
}

func collectionBounds(collection string) ([]byte, []byte) {
	return []byte("doc:" + collection + ":"), []byte("doc:" + collection + ";")
}

func idFromKey(collection string, key []byte) string {
	return strings.TrimPrefix(string(key), "doc:"+collection+":")
}

func newULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func decodeValue(collection, id string, value []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(value, &doc); err != nil {
		return nil, fmt.Errorf("corrupt document %s/%s: %w", collection, id, err)
	}
	doc["id"] = id
	return doc, nil
}

func encodeValue(data Document) ([]byte, error) {
	// The id lives in the key, never in the stored value.
	stored := make(Document, len(data))
	for k, v := range data {
		if k == "id" {
			continue
		}
		stored[k] = v
	}
	return json.Marshal(stored)
}

// GetDocument fetches a single document by id. Returns (nil, nil) when absent.
func (p *PebbleStore) GetDocument(collection, id string) (Document, error) {
	value, closer, err := p.db.Get(docKey(collection, id))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return decodeValue(collection, id, value)
}

// GetAllDocuments lists documents in key order with offset/limit pagination.
func (p *PebbleStore) GetAllDocuments(collection string, limit, offset int) ([]Document, error) {
	lower, upper := collectionBounds(collection)
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	docs := []Document{}
	skipped := 0
	for iter.First(); iter.Valid(); iter.Next() {
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(docs) >= limit {
			break
		}
		doc, err := decodeValue(collection, idFromKey(collection, iter.Key()), iter.Value())
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, iter.Error()
}

// AddDocument stores a new document. An empty id generates a ULID.
// When an explicit id is given the document is written unconditionally,
// replacing any prior content under that id.
func (p *PebbleStore) AddDocument(collection string, data Document, id string) (string, error) {
	if id == "" {
		generated, err := newULID()
		if err != nil {
			return "", err
		}
		id = generated
	}
	value, err := encodeValue(data)
	if err != nil {
		return "", err
	}
	if err := p.db.Set(docKey(collection, id), value, pebble.Sync); err != nil {
		return "", err
	}
	return id, nil
}

// SetDocument writes a full document, creating it if absent.
func (p *PebbleStore) SetDocument(collection, id string, data Document) error {
	value, err := encodeValue(data)
	if err != nil {
		return err
	}
	return p.db.Set(docKey(collection, id), value, pebble.Sync)
}

// UpdateDocument merges fields into an existing document.
// Returns ErrNotFound when the document does not exist.
func (p *PebbleStore) UpdateDocument(collection, id string, data Document) error {
	existing, err := p.GetDocument(collection, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	for k, v := range data {
		if k == "id" {
			continue
		}
		existing[k] = v
	}
	return p.SetDocument(collection, id, existing)
}

// DeleteDocument removes a document; deleting an absent document is a no-op.
func (p *PebbleStore) DeleteDocument(collection, id string) error {
	return p.db.Delete(docKey(collection, id), pebble.Sync)
}

// DocumentExists checks if a document exists
func (p *PebbleStore) DocumentExists(collection, id string) (bool, error) {
	_, closer, err := p.db.Get(docKey(collection, id))
	if err == pebble.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	closer.Close()
	return true, nil
}

// QueryDocuments scans a collection and returns documents matching a single
// field condition. Supported operators: ==, !=, <, <=, >, >=, array-contains.
func (p *PebbleStore) QueryDocuments(collection, field, operator string, value any) ([]Document, error) {
	lower, upper := collectionBounds(collection)
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	results := []Document{}
	for iter.First(); iter.Valid(); iter.Next() {
		doc, err := decodeValue(collection, idFromKey(collection, iter.Key()), iter.Value())
		if err != nil {
			return nil, err
		}
		match, err := matchCondition(doc[field], operator, value)
		if err != nil {
			return nil, err
		}
		if match {
			results = append(results, doc)
		}
	}
	return results, iter.Error()
}

// BatchUpdateDocuments merges fields into multiple documents in one batch.
func (p *PebbleStore) BatchUpdateDocuments(collection string, updates map[string]Document) error {
	batch := p.db.NewBatch()
	defer batch.Close()

	for id, data := range updates {
		existing, err := p.GetDocument(collection, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		for k, v := range data {
			if k == "id" {
				continue
			}
			existing[k] = v
		}
		value, err := encodeValue(existing)
		if err != nil {
			return err
		}
		if err := batch.Set(docKey(collection, id), value, nil); err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

// BatchDeleteDocuments removes multiple documents in one batch.
func (p *PebbleStore) BatchDeleteDocuments(collection string, ids []string) error {
	batch := p.db.NewBatch()
	defer batch.Close()

	for _, id := range ids {
		if err := batch.Delete(docKey(collection, id), nil); err != nil {
			return err
		}
	}
	return batch.Commit(pebble.Sync)
}

// matchCondition evaluates a single query condition against a field value.
// JSON decoding normalizes all numbers to float64, so numeric comparisons
// only need to handle that one representation.
func matchCondition(fieldValue any, operator string, value any) (bool, error) {
	switch operator {
	case "==":
		return equalValues(fieldValue, value), nil
	case "!=":
		return !equalValues(fieldValue, value), nil
	case "<", "<=", ">", ">=":
		cmp, ok := compareValues(fieldValue, value)
		if !ok {
			return false, nil
		}
		switch operator {
		case "<":
			return cmp < 0, nil
		case "<=":
			return cmp <= 0, nil
		case ">":
			return cmp > 0, nil
		default:
			return cmp >= 0, nil
		}
	case "array-contains":
		arr, ok := fieldValue.([]any)
		if !ok {
			return false, nil
		}
		for _, elem := range arr {
			if equalValues(elem, value) {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("unsupported query operator: %q", operator)
	}
}

func equalValues(a, b any) bool {
	if cmp, ok := compareValues(a, b); ok {
		return cmp == 0
	}
	return a == b
}

// compareValues orders two values of the same kind. Returns ok=false for
// mismatched or unordered kinds.
func compareValues(a, b any) (int, bool) {
	switch av := a.(type) {
	case float64:
		bv, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		default:
			return 0, true
		}
	case int:
		return compareValues(float64(av), b)
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		if av == bv {
			return 0, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
