package catalog

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
)

// Summary aggregates a product list for the status line.
type Summary struct {
	Count       int
	Units       int
	StockValue  float64
	MeanPrice   float64
	MedianPrice float64
}

// Summarize computes totals and price statistics. An empty list yields a zero Summary.
func Summarize(products []Product) Summary {
	if len(products) == 0 {
		return Summary{}
	}
	prices := make(stats.Float64Data, 0, len(products))
	s := Summary{Count: len(products)}
	for _, p := range products {
		prices = append(prices, p.Price)
		s.Units += p.Quantity
		s.StockValue += p.StockValue()
	}
	if mean, err := prices.Mean(); err == nil {
		s.MeanPrice = mean
	}
	if median, err := prices.Median(); err == nil {
		s.MedianPrice = median
	}
	return s
}

// String renders the summary for the status line.
func (s Summary) String() string {
	if s.Count == 0 {
		return "no products"
	}
	return fmt.Sprintf("%s units · value %s · mean %s · median %s",
		humanize.Comma(int64(s.Units)),
		FormatPrice(s.StockValue),
		FormatPrice(s.MeanPrice),
		FormatPrice(s.MedianPrice),
	)
}
