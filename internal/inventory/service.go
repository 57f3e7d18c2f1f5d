package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidBillType = errors.New("bill_type must be purchase or sale")
	ErrNoLines         = errors.New("no items could be recognized on the bill")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=inventory
type Repository interface {
	ListItems(ctx context.Context) ([]Item, error)
	ListBills(ctx context.Context) ([]Bill, error)

	BeginBill(ctx context.Context) (BillTx, error)
}

// BillTx scopes one bill application: the stock adjustments and the bill
// record commit or roll back together.
type BillTx interface {
	FindItemsByName(ctx context.Context, names []string) ([]*Item, error)
	CreateItem(ctx context.Context, item *Item) error
	UpdateItemQuantity(ctx context.Context, id uuid.UUID, quantity int64) error
	CreateBill(ctx context.Context, bill *Bill) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListItems(ctx context.Context) ([]Item, error) {
	return s.repo.ListItems(ctx)
}

func (s *Service) ListBills(ctx context.Context) ([]Bill, error) {
	return s.repo.ListBills(ctx)
}

// BillLine is one parsed line from a scanned bill.
type BillLine struct {
	Name      string
	Quantity  int64
	UnitPrice int64 // cents
}

type ApplyBillParams struct {
	Type      BillType
	Date      time.Time
	ImagePath string
	Lines     []BillLine
}

// ApplyBill records a scanned bill and adjusts stock accordingly: purchases
// add quantity, sales subtract it, and items not yet in the inventory are
// inserted with the line's quantity and price. The bill record and all stock
// changes happen in a single transaction.
func (s *Service) ApplyBill(ctx context.Context, params ApplyBillParams) (*Bill, error) {
	if !params.Type.Valid() {
		return nil, ErrInvalidBillType
	}

	if len(params.Lines) == 0 {
		return nil, ErrNoLines
	}

	tx, err := s.repo.BeginBill(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin bill: %w", err)
	}
	defer tx.Rollback()

	names := make([]string, len(params.Lines))
	for i, line := range params.Lines {
		names[i] = line.Name
	}

	existing, err := tx.FindItemsByName(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}

	byName := make(map[string]*Item, len(existing))
	for _, item := range existing {
		byName[item.Name] = item
	}

	bill := &Bill{
		BillNumber: billNumber(params.Type, params.Date),
		BillDate:   params.Date,
		BillType:   params.Type,
		ImagePath:  params.ImagePath,
		Items:      make([]BillItem, 0, len(params.Lines)),
	}

	for _, line := range params.Lines {
		lineTotal := line.Quantity * line.UnitPrice
		bill.TotalAmount += lineTotal
		bill.Items = append(bill.Items, BillItem{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: lineTotal,
		})

		item, found := byName[line.Name]
		if !found {
			created := &Item{
				Name:      line.Name,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			}
			if err := tx.CreateItem(ctx, created); err != nil {
				return nil, fmt.Errorf("create item %q: %w", line.Name, err)
			}

			byName[line.Name] = created

			continue
		}

		if params.Type == BillTypePurchase {
			item.Quantity += line.Quantity
		} else {
			item.Quantity -= line.Quantity
		}

		if err := tx.UpdateItemQuantity(ctx, item.ID, item.Quantity); err != nil {
			return nil, fmt.Errorf("update item %q: %w", line.Name, err)
		}
	}

	if err := tx.CreateBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit bill: %w", err)
	}

	return bill, nil
}

// billNumber generates a readable unique bill number, e.g. PUR-20260115-3f1a2b4c.
func billNumber(t BillType, date time.Time) string {
	prefix := strings.ToUpper(string(t))[:3]
	return fmt.Sprintf("%s-%s-%s", prefix, date.Format("20060102"), uuid.NewString()[:8])
}
