// file: internal/importer/importer.go
// version: 1.0.0
// guid: 3b7e1a4d-9c2f-4d8b-a5e1-6f9c2b5d8e1a

package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopkit/storefront/internal/store"
)

// Summary reports the outcome of a product import run.
type Summary struct {
	Imported int
	Errors   []string
}

// ImportProductsFromCSV reads product rows from a CSV file and writes them to
// the products collection. A row providing a product_id keeps that id;
// otherwise one is generated. Row-level failures are collected and the import
// continues.
//
// Expected header: product_id,name,description,price,image_url,stock,category
// (product_id optional, column order free).
func ImportProductsFromCSV(s store.Store, path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return ImportProducts(s, f)
}

// ImportProducts imports product rows from an open CSV stream.
func ImportProducts(s store.Store, r io.Reader) (*Summary, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("csv header missing required column %q", "name")
	}

	summary := &Summary{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		name := field("name")
		price, priceErr := parseFloat(field("price"))
		stock, stockErr := parseInt(field("stock"))
		if priceErr != nil || stockErr != nil {
			msg := fmt.Sprintf("line %d (%s): invalid numeric field", line, name)
			log.Printf("[WARN] import: %s", msg)
			summary.Errors = append(summary.Errors, msg)
			continue
		}

		data := store.Document{
			"name":        name,
			"description": field("description"),
			"price":       price,
			"image_url":   field("image_url"),
			"stock":       stock,
			"category":    field("category"),
			"created_at":  time.Now().UTC().Format(time.RFC3339),
		}

		id, err := s.AddDocument("products", data, field("product_id"))
		if err != nil {
			msg := fmt.Sprintf("line %d (%s): %v", line, name, err)
			log.Printf("[WARN] import: %s", msg)
			summary.Errors = append(summary.Errors, msg)
			continue
		}

		log.Printf("[INFO] imported product %q (id %s)", name, id)
		summary.Imported++
	}

	return summary, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
