// Package seed imports product catalogs from YAML or CSV files and renders
// product lists for the non-interactive list command. Nothing is ever written
// back to a seed file.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Format names a seed or output encoding.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat validates an output format name.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w %q (want table, csv or yaml)", ErrUnknownFormat, raw)
}

// FormatFromPath picks the seed decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("seed %s: %w for extension %q", path, ErrUnknownFormat, filepath.Ext(path))
}

type yamlDocument struct {
	Products []catalog.Product `yaml:"products"`
}

// csvRow keeps every column as text so numbers go through the same coercion
// as the product form.
type csvRow struct {
	ID          string `csv:"id"`
	Title       string `csv:"title"`
	Price       string `csv:"price"`
	Quantity    string `csv:"quantity"`
	Category    string `csv:"category"`
	Description string `csv:"description"`
}

type observer interface {
	Observe(id int64)
}

// LoadFile reads and validates the seed file at path.
func LoadFile(path string, ids catalog.IDSource) ([]catalog.Product, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	products, err := Decode(bytes.NewReader(data), format, ids)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return products, nil
}

// Decode parses products from r. Rows without an ID get one from ids; rows are
// validated with the same rules as the product form and IDs must be unique.
func Decode(r io.Reader, format Format, ids catalog.IDSource) ([]catalog.Product, error) {
	var (
		products []catalog.Product
		err      error
	)
	switch format {
	case FormatYAML:
		products, err = decodeYAML(r)
	case FormatCSV:
		products, err = decodeCSV(r)
	default:
		return nil, fmt.Errorf("decode: %w %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if err := assignIDs(products, ids); err != nil {
		return nil, err
	}
	if _, err := catalog.New(products); err != nil {
		return nil, err
	}
	return products, nil
}

func decodeYAML(r io.Reader) ([]catalog.Product, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	for i, p := range doc.Products {
		fields := catalog.Fields{
			Title:       catalog.CleanLine(p.Title),
			Price:       p.Price,
			Quantity:    p.Quantity,
			Category:    catalog.CleanLine(p.Category),
			Description: catalog.CleanText(p.Description),
		}
		if err := catalog.ValidateFields(fields); err != nil {
			return nil, fmt.Errorf("product %d: %w", i+1, err)
		}
		doc.Products[i] = p.WithFields(fields)
	}
	return doc.Products, nil
}

func decodeCSV(r io.Reader) ([]catalog.Product, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	products := make([]catalog.Product, 0, len(rows))
	for i, row := range rows {
		// header is line 1
		line := i + 2
		var id int64
		if raw := strings.TrimSpace(row.ID); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed <= 0 {
				return nil, fmt.Errorf("line %d: invalid id %q", line, row.ID)
			}
			id = parsed
		}
		fields, err := catalog.ParseForm(catalog.FormBuffer{
			Title:       row.Title,
			Price:       row.Price,
			Quantity:    row.Quantity,
			Category:    row.Category,
			Description: row.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		products = append(products, catalog.Product{ID: id}.WithFields(fields))
	}
	return products, nil
}

func assignIDs(products []catalog.Product, ids catalog.IDSource) error {
	if obs, ok := ids.(observer); ok {
		for _, p := range products {
			obs.Observe(p.ID)
		}
	}
	for i := range products {
		if products[i].ID < 0 {
			return fmt.Errorf("product %d: negative id %d", i+1, products[i].ID)
		}
		if products[i].ID != 0 {
			continue
		}
		if ids == nil {
			return fmt.Errorf("product %d: missing id", i+1)
		}
		products[i].ID = ids.NextID()
	}
	return nil
}
