package view

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"stockscan/internal/client"
	"stockscan/internal/collection"
	"stockscan/internal/inventory"
)

// NewInventoryModel browses the item collection, searchable by name or SKU.
// The footer sum is the stock value of the filtered rows.
func NewInventoryModel(api *client.Client) CollectionModel[inventory.Item] {
	return newCollectionModel(collectionConfig[inventory.Item]{
		Title:       "Inventory",
		Placeholder: "Search items by name or SKU",
		CountLabel:  "Total Items",
		SumLabel:    "Total Value",
		Columns: []table.Column{
			{Title: "Name", Width: 28},
			{Title: "SKU", Width: 12},
			{Title: "Quantity", Width: 10},
			{Title: "Unit Price", Width: 12},
			{Title: "Total Value", Width: 12},
		},
		Desc: collection.Descriptor[inventory.Item]{
			SearchText: func(i inventory.Item) []string {
				return []string{i.Name, i.SKU}
			},
			Metric: func(i inventory.Item) int64 {
				return i.LineValue()
			},
		},
		ToRow: func(i inventory.Item) table.Row {
			sku := i.SKU
			if sku == "" {
				sku = "-"
			}

			return table.Row{
				i.Name,
				sku,
				strconv.FormatInt(i.Quantity, 10),
				FormatAmount(i.UnitPrice),
				FormatAmount(i.LineValue()),
			}
		},
		Fetch: func(ctx context.Context) ([]inventory.Item, error) {
			return api.ListItems(ctx)
		},
	})
}
