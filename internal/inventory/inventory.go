package inventory

import (
	"time"

	"github.com/google/uuid"
)

// BillType says whether a bill records stock coming in or going out.
type BillType string

const (
	BillTypePurchase BillType = "purchase"
	BillTypeSale     BillType = "sale"
)

// Valid reports whether t is one of the known bill types.
func (t BillType) Valid() bool {
	return t == BillTypePurchase || t == BillTypeSale
}

// LowStockThreshold is the quantity below which an item counts as low stock.
const LowStockThreshold = 10

// Item is a stock-keeping unit.
type Item struct {
	ID        uuid.UUID
	Name      string
	SKU       string // empty when the item has no SKU
	Quantity  int64
	UnitPrice int64 // cents
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// LineValue is the total value of the held stock, in cents.
func (i Item) LineValue() int64 {
	return i.Quantity * i.UnitPrice
}

// LowStock reports whether the item quantity is strictly below the threshold.
func (i Item) LowStock() bool {
	return i.Quantity < LowStockThreshold
}

// Bill is a recorded purchase or sale, derived from an uploaded bill image.
type Bill struct {
	ID          uuid.UUID
	BillNumber  string
	BillDate    time.Time
	BillType    BillType
	TotalAmount int64 // cents
	ImagePath   string
	Items       []BillItem
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// BillItem is one parsed line of a bill.
type BillItem struct {
	ID        uuid.UUID
	Name      string
	Quantity  int64
	UnitPrice int64 // cents
	LineTotal int64 // cents
}
