package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockscan/internal/client"
	"stockscan/internal/inventory"
)

func TestClient_ListItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/items/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"6f1e1d2c-0000-4000-8000-000000000001","name":"Sugar","sku":"SUG-01","quantity":20,"unit_price":1.5,"created_at":"2026-01-10T10:00:00Z"},
			{"id":"6f1e1d2c-0000-4000-8000-000000000002","name":"Salt","quantity":9,"unit_price":0.99,"created_at":"2026-01-11T10:00:00Z"}
		]`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, 5*time.Second)

	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Sugar", items[0].Name)
	assert.Equal(t, "SUG-01", items[0].SKU)
	assert.Equal(t, int64(150), items[0].UnitPrice)

	assert.Equal(t, "Salt", items[1].Name)
	assert.Empty(t, items[1].SKU)
	assert.Equal(t, int64(99), items[1].UnitPrice)
}

func TestClient_ListBills(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bills/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"id":"6f1e1d2c-0000-4000-8000-000000000003",
				"bill_number":"PUR-20260115-3f1a2b4c",
				"bill_date":"2026-01-15T00:00:00Z",
				"bill_type":"purchase",
				"total_amount":42.5,
				"items":[{"id":"6f1e1d2c-0000-4000-8000-000000000004","name":"Sugar","quantity":10,"unit_price":1.5,"total_price":15.0}],
				"created_at":"2026-01-15T12:00:00Z"
			}
		]`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, 5*time.Second)

	bills, err := c.ListBills(context.Background())
	require.NoError(t, err)
	require.Len(t, bills, 1)

	assert.Equal(t, "PUR-20260115-3f1a2b4c", bills[0].BillNumber)
	assert.Equal(t, inventory.BillTypePurchase, bills[0].BillType)
	assert.Equal(t, int64(4250), bills[0].TotalAmount)
	require.Len(t, bills[0].Items, 1)
	assert.Equal(t, int64(1500), bills[0].Items[0].LineTotal)
}

func TestClient_ServerErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"no items could be recognized on the bill"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, 5*time.Second)

	_, err := c.ListItems(context.Background())
	require.Error(t, err)

	var serverErr *client.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusUnprocessableEntity, serverErr.StatusCode)

	// The backend's detail message surfaces word for word.
	assert.Equal(t, "no items could be recognized on the bill", err.Error())
}

func TestClient_ServerErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := client.New(srv.URL, 5*time.Second)

	_, err := c.ListBills(context.Background())
	require.Error(t, err)

	var serverErr *client.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "server returned status 500", err.Error())
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable on purpose

	c := client.New(srv.URL, time.Second)

	_, err := c.ListItems(context.Background())
	require.Error(t, err)

	var netErr *client.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestClient_SubmitBill(t *testing.T) {
	var (
		gotPath     string
		gotFilename string
		gotBillType string
		gotContent  []byte
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotBillType = r.FormValue("bill_type")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		gotFilename = header.Filename
		gotContent, err = io.ReadAll(file)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Inventory updated successfully"}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "bill.jpg")
	require.NoError(t, os.WriteFile(path, []byte("fake image bytes"), 0o644))

	c := client.New(srv.URL, 5*time.Second)

	err := c.SubmitBill(context.Background(), path, inventory.BillTypeSale)
	require.NoError(t, err)

	assert.Equal(t, "/bills/upload/", gotPath)
	assert.Equal(t, "bill.jpg", gotFilename)
	assert.Equal(t, "sale", gotBillType)
	assert.Equal(t, []byte("fake image bytes"), gotContent)
}

func TestClient_SubmitBill_MissingFile(t *testing.T) {
	c := client.New("http://localhost:0", time.Second)

	err := c.SubmitBill(context.Background(), "/does/not/exist.jpg", inventory.BillTypePurchase)
	require.Error(t, err)

	var validationErr *client.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestClient_SubmitBill_ServerRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"bill_type must be purchase or sale"}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "bill.png")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))

	c := client.New(srv.URL, 5*time.Second)

	err := c.SubmitBill(context.Background(), path, inventory.BillType("refund"))
	require.Error(t, err)
	assert.Equal(t, "bill_type must be purchase or sale", err.Error())
}
