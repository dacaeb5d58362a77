// Package report derives the dashboard chart series from the item list. It is
// a pure projection, it holds no state and performs no I/O.
package report

import "inventoryone/internal/model"

// Summary holds the parallel chart series for the dashboard. The four slices
// always have the same length and are aligned by index.
type Summary struct {
	Labels     []string  `json:"labels"`
	Prices     []float64 `json:"price"`
	Quantities []int     `json:"quantity"`
	Values     []float64 `json:"value"`
}

// Summarize derives the dashboard series from items. Values[i] is always
// Prices[i] * Quantities[i].
func Summarize(items []model.Item) Summary {
	s := Summary{
		Labels:     make([]string, 0, len(items)),
		Prices:     make([]float64, 0, len(items)),
		Quantities: make([]int, 0, len(items)),
		Values:     make([]float64, 0, len(items)),
	}
	for _, i := range items {
		s.Labels = append(s.Labels, i.Model)
		s.Prices = append(s.Prices, i.Price)
		s.Quantities = append(s.Quantities, i.Quantity)
		s.Values = append(s.Values, i.Price*float64(i.Quantity))
	}
	return s
}
