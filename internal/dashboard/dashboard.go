// Package dashboard computes the cross-collection summary statistics shown on
// the landing screen.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"stockscan/internal/inventory"
)

//go:generate mockgen -source=dashboard.go -destination=source_mock.go -package=dashboard

// Source provides the two collections the dashboard aggregates.
type Source interface {
	ListItems(ctx context.Context) ([]inventory.Item, error)
	ListBills(ctx context.Context) ([]inventory.Bill, error)
}

// Stats holds the summary figures for one dashboard activation.
type Stats struct {
	TotalItems      int
	TotalStockValue int64 // cents
	RecentBills     int
	LowStockItems   int
}

// Load fetches items and bills concurrently and computes the stats.
// The result is all-or-nothing: if either fetch fails, only an error is
// returned and no partial statistics are published. Both fetches run to
// completion before Load returns.
func Load(ctx context.Context, src Source) (*Stats, error) {
	var (
		items []inventory.Item
		bills []inventory.Bill
	)

	// A bare errgroup (no derived context) so one failing fetch does not
	// cancel the other; Wait still reports the first error after both settle.
	var g errgroup.Group

	g.Go(func() error {
		var err error
		items, err = src.ListItems(ctx)

		return err
	})

	g.Go(func() error {
		var err error
		bills, err = src.ListBills(ctx)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := Compute(items, bills)

	return &stats, nil
}

// Compute derives the summary statistics from fetched collections.
// RecentBills is the full bill count; no time window is applied.
func Compute(items []inventory.Item, bills []inventory.Bill) Stats {
	stats := Stats{
		TotalItems:  len(items),
		RecentBills: len(bills),
	}

	for _, item := range items {
		stats.TotalStockValue += item.LineValue()

		if item.LowStock() {
			stats.LowStockItems++
		}
	}

	return stats
}
