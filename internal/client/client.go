// Package client is the HTTP consumer of the StockScan backend: it lists the
// item and bill collections and submits bill images for processing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockscan/internal/inventory"
)

// Client talks to one backend instance. It performs no retries; failures are
// reported verbatim to the caller.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type itemDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	SKU       string     `json:"sku,omitempty"`
	Quantity  int64      `json:"quantity"`
	UnitPrice float64    `json:"unit_price"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type billItemDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	LineTotal float64   `json:"total_price"`
}

type billDTO struct {
	ID          uuid.UUID     `json:"id"`
	BillNumber  string        `json:"bill_number"`
	BillDate    time.Time     `json:"bill_date"`
	BillType    string        `json:"bill_type"`
	TotalAmount float64       `json:"total_amount"`
	Items       []billItemDTO `json:"items"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   *time.Time    `json:"updated_at,omitempty"`
}

// ListItems fetches the full inventory snapshot.
func (c *Client) ListItems(ctx context.Context) ([]inventory.Item, error) {
	var dtos []itemDTO
	if err := c.getJSON(ctx, "/items/", &dtos); err != nil {
		return nil, err
	}

	items := make([]inventory.Item, len(dtos))
	for i, d := range dtos {
		items[i] = inventory.Item{
			ID:        d.ID,
			Name:      d.Name,
			SKU:       d.SKU,
			Quantity:  d.Quantity,
			UnitPrice: toCents(d.UnitPrice),
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		}
	}

	return items, nil
}

// ListBills fetches the full bill ledger snapshot.
func (c *Client) ListBills(ctx context.Context) ([]inventory.Bill, error) {
	var dtos []billDTO
	if err := c.getJSON(ctx, "/bills/", &dtos); err != nil {
		return nil, err
	}

	bills := make([]inventory.Bill, len(dtos))
	for i, d := range dtos {
		bill := inventory.Bill{
			ID:          d.ID,
			BillNumber:  d.BillNumber,
			BillDate:    d.BillDate,
			BillType:    inventory.BillType(d.BillType),
			TotalAmount: toCents(d.TotalAmount),
			Items:       make([]inventory.BillItem, len(d.Items)),
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		}

		for j, li := range d.Items {
			bill.Items[j] = inventory.BillItem{
				ID:        li.ID,
				Name:      li.Name,
				Quantity:  li.Quantity,
				UnitPrice: toCents(li.UnitPrice),
				LineTotal: toCents(li.LineTotal),
			}
		}

		bills[i] = bill
	}

	return bills, nil
}

// SubmitBill uploads the bill image at path as a single multipart request with
// the bill type. A non-2xx response surfaces the server's detail message.
func (c *Client) SubmitBill(ctx context.Context, path string, billType inventory.BillType) error {
	f, err := os.Open(path)
	if err != nil {
		return &ValidationError{Msg: fmt.Sprintf("cannot read file: %v", err)}
	}
	defer f.Close()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}

	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}

	if err := mw.WriteField("bill_type", string(billType)); err != nil {
		return fmt.Errorf("write bill_type field: %w", err)
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bills/upload/", &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(resp)
	}

	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// serverError builds a ServerError from the response, taking the message from
// the body's detail field when present.
func serverError(resp *http.Response) error {
	var body struct {
		Detail string `json:"detail"`
	}

	// A missing or malformed body just leaves Detail empty.
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)

	return &ServerError{StatusCode: resp.StatusCode, Detail: body.Detail}
}

// toCents converts a decimal wire amount to cents with half-up rounding.
func toCents(v float64) int64 {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
