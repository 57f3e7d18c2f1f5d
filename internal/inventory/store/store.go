package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"stockscan/internal/inventory"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*inventory.Item, error) {
	var item inventory.Item

	var sku sql.NullString

	if err := s.Scan(
		&item.ID, &item.Name, &sku, &item.Quantity, &item.UnitPrice,
		&item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}

	item.SKU = sku.String

	return &item, nil
}

const selectItemColumns = `id, name, sku, quantity, unit_price, created_at, updated_at`

func (s *Store) ListItems(ctx context.Context) ([]inventory.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM items ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []inventory.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, *item)
	}

	return items, rows.Err()
}

func (s *Store) ListBills(ctx context.Context) ([]inventory.Bill, error) {
	query := `
		SELECT id, bill_number, bill_date, bill_type, total_amount, image_path, created_at, updated_at
		FROM bills
		ORDER BY bill_date DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer rows.Close()

	var bills []inventory.Bill

	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var bill inventory.Bill

		var billType string

		if err := rows.Scan(
			&bill.ID, &bill.BillNumber, &bill.BillDate, &billType,
			&bill.TotalAmount, &bill.ImagePath, &bill.CreatedAt, &bill.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		bill.BillType = inventory.BillType(billType)
		index[bill.ID] = len(bills)
		bills = append(bills, bill)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachBillItems(ctx, bills, index); err != nil {
		return nil, err
	}

	return bills, nil
}

func (s *Store) attachBillItems(ctx context.Context, bills []inventory.Bill, index map[uuid.UUID]int) error {
	if len(bills) == 0 {
		return nil
	}

	query := `
		SELECT id, bill_id, name, quantity, unit_price, total_price
		FROM bill_items
		ORDER BY bill_id, created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("listing bill items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var li inventory.BillItem

		var billID uuid.UUID

		if err := rows.Scan(&li.ID, &billID, &li.Name, &li.Quantity, &li.UnitPrice, &li.LineTotal); err != nil {
			return fmt.Errorf("scanning bill item: %w", err)
		}

		if i, ok := index[billID]; ok {
			bills[i].Items = append(bills[i].Items, li)
		}
	}

	return rows.Err()
}

func (s *Store) BeginBill(ctx context.Context) (inventory.BillTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return &billTx{tx: tx}, nil
}

type billTx struct {
	tx *sql.Tx
}

func (b *billTx) FindItemsByName(ctx context.Context, names []string) ([]*inventory.Item, error) {
	if len(names) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(names))

	args := make([]any, len(names))

	for i, name := range names {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = name
	}

	query := `SELECT ` + selectItemColumns + ` FROM items WHERE name IN (` +
		strings.Join(placeholders, ", ") + `) FOR UPDATE`

	rows, err := b.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding items: %w", err)
	}
	defer rows.Close()

	var items []*inventory.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (b *billTx) CreateItem(ctx context.Context, item *inventory.Item) error {
	query := `
		INSERT INTO items (name, sku, quantity, unit_price, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := b.tx.QueryRowContext(ctx, query,
		item.Name, item.SKU, item.Quantity, item.UnitPrice,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating item: %w", err)
	}

	return nil
}

func (b *billTx) UpdateItemQuantity(ctx context.Context, id uuid.UUID, quantity int64) error {
	query := `UPDATE items SET quantity = $2, updated_at = NOW() WHERE id = $1`

	if _, err := b.tx.ExecContext(ctx, query, id, quantity); err != nil {
		return fmt.Errorf("updating item quantity: %w", err)
	}

	return nil
}

func (b *billTx) CreateBill(ctx context.Context, bill *inventory.Bill) error {
	query := `
		INSERT INTO bills (bill_number, bill_date, bill_type, total_amount, image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := b.tx.QueryRowContext(ctx, query,
		bill.BillNumber, bill.BillDate, string(bill.BillType), bill.TotalAmount, bill.ImagePath,
	).Scan(&bill.ID, &bill.CreatedAt, &bill.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating bill: %w", err)
	}

	itemQuery := `
		INSERT INTO bill_items (bill_id, name, quantity, unit_price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`

	for i := range bill.Items {
		li := &bill.Items[i]

		err := b.tx.QueryRowContext(ctx, itemQuery,
			bill.ID, li.Name, li.Quantity, li.UnitPrice, li.LineTotal,
		).Scan(&li.ID)
		if err != nil {
			return fmt.Errorf("creating bill item: %w", err)
		}
	}

	return nil
}

func (b *billTx) Commit() error {
	return b.tx.Commit()
}

func (b *billTx) Rollback() error {
	return b.tx.Rollback()
}
