package seed

import (
	"fmt"
	"io"
	"strconv"

	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/format/table"
	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// TableRows renders products as table cells with a header row.
func TableRows(products []catalog.Product) [][]string {
	rows := make([][]string, 0, len(products)+1)
	rows = append(rows, []string{"ID", "TITLE", "PRICE", "QTY", "CATEGORY"})
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			p.PriceLabel(),
			p.QuantityLabel(),
			p.CategoryLabel(),
		})
	}
	return rows
}

var tableAlignments = []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignRight, table.AlignRight, table.AlignLeft}

// Encode writes products to w in the requested format.
func Encode(w io.Writer, format Format, products []catalog.Product) error {
	switch format {
	case FormatTable:
		for _, line := range table.Format(TableRows(products), tableAlignments) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	case FormatCSV:
		rows := make([]csvRow, len(products))
		for i, p := range products {
			buf := p.Buffer()
			rows[i] = csvRow{
				ID:          strconv.FormatInt(p.ID, 10),
				Title:       buf.Title,
				Price:       buf.Price,
				Quantity:    buf.Quantity,
				Category:    buf.Category,
				Description: buf.Description,
			}
		}
		if err := gocsv.Marshal(rows, w); err != nil {
			return fmt.Errorf("encode csv: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		doc := yamlDocument{Products: products}
		if doc.Products == nil {
			doc.Products = []catalog.Product{}
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("encode: %w %q", ErrUnknownFormat, format)
}
