// Package collection implements the shared browse logic behind the inventory
// and bill tables: a live text filter over a fetched snapshot plus the derived
// totals recomputed from the filtered rows.
package collection

import "strings"

// Descriptor tells the generic filter which fields of T are searchable and
// which monetary metric (in cents) each row contributes to the footer sum.
type Descriptor[T any] struct {
	SearchText func(T) []string
	Metric     func(T) int64
}

// Filter returns the rows whose searchable fields contain term,
// case-insensitively. An empty term returns the snapshot unchanged.
// Filtering is always applied to the full snapshot, never cumulatively.
func Filter[T any](rows []T, term string, d Descriptor[T]) []T {
	if term == "" {
		return rows
	}

	needle := strings.ToLower(term)

	filtered := make([]T, 0, len(rows))

	for _, row := range rows {
		for _, field := range d.SearchText(row) {
			if strings.Contains(strings.ToLower(field), needle) {
				filtered = append(filtered, row)
				break
			}
		}
	}

	return filtered
}

// MetricSum sums the per-row metric over rows, in cents. Empty input sums to 0.
func MetricSum[T any](rows []T, d Descriptor[T]) int64 {
	var sum int64
	for _, row := range rows {
		sum += d.Metric(row)
	}

	return sum
}
