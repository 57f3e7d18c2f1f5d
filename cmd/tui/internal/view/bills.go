package view

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"stockscan/internal/client"
	"stockscan/internal/collection"
	"stockscan/internal/inventory"
)

// NewBillsModel browses the bill ledger, searchable by bill number or type.
// The footer sum is the total amount of the filtered rows.
func NewBillsModel(api *client.Client) CollectionModel[inventory.Bill] {
	return newCollectionModel(collectionConfig[inventory.Bill]{
		Title:       "Bills",
		Placeholder: "Search bills by number or type",
		CountLabel:  "Total Bills",
		SumLabel:    "Total Value",
		Columns: []table.Column{
			{Title: "Bill Number", Width: 22},
			{Title: "Date", Width: 12},
			{Title: "Type", Width: 10},
			{Title: "Total Amount", Width: 14},
			{Title: "Items", Width: 7},
		},
		Desc: collection.Descriptor[inventory.Bill]{
			SearchText: func(b inventory.Bill) []string {
				return []string{b.BillNumber, string(b.BillType)}
			},
			Metric: func(b inventory.Bill) int64 {
				return b.TotalAmount
			},
		},
		ToRow: func(b inventory.Bill) table.Row {
			return table.Row{
				b.BillNumber,
				FormatDate(b.BillDate),
				string(b.BillType),
				FormatAmount(b.TotalAmount),
				strconv.Itoa(len(b.Items)),
			}
		},
		Fetch: func(ctx context.Context) ([]inventory.Bill, error) {
			return api.ListBills(ctx)
		},
	})
}
