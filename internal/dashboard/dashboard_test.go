package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stockscan/internal/dashboard"
	"stockscan/internal/inventory"
)

func TestLoad_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := dashboard.NewMockSource(ctrl)

	items := []inventory.Item{
		{Name: "Sugar", Quantity: 20, UnitPrice: 150},
		{Name: "Flour", Quantity: 5, UnitPrice: 200},
		{Name: "Salt", Quantity: 9, UnitPrice: 90},
	}
	bills := []inventory.Bill{
		{BillNumber: "PUR-20260110-aaaa"},
		{BillNumber: "SAL-20260112-bbbb"},
	}

	src.EXPECT().ListItems(gomock.Any()).Return(items, nil)
	src.EXPECT().ListBills(gomock.Any()).Return(bills, nil)

	stats, err := dashboard.Load(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalItems)
	// 20*150 + 5*200 + 9*90 = 3000 + 1000 + 810
	assert.Equal(t, int64(4810), stats.TotalStockValue)
	assert.Equal(t, 2, stats.RecentBills)
	assert.Equal(t, 2, stats.LowStockItems)
}

func TestLoad_ItemsFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := dashboard.NewMockSource(ctrl)

	// The bill fetch still runs to completion even though items fail.
	src.EXPECT().ListItems(gomock.Any()).Return(nil, errors.New("boom"))
	src.EXPECT().ListBills(gomock.Any()).Return([]inventory.Bill{{}}, nil)

	stats, err := dashboard.Load(context.Background(), src)
	assert.Error(t, err)
	assert.Nil(t, stats)
}

func TestLoad_BillsFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := dashboard.NewMockSource(ctrl)

	src.EXPECT().ListItems(gomock.Any()).Return([]inventory.Item{{Quantity: 1}}, nil)
	src.EXPECT().ListBills(gomock.Any()).Return(nil, errors.New("boom"))

	stats, err := dashboard.Load(context.Background(), src)
	assert.Error(t, err)
	assert.Nil(t, stats)
}

func TestCompute_Empty(t *testing.T) {
	stats := dashboard.Compute(nil, nil)

	assert.Equal(t, 0, stats.TotalItems)
	assert.Equal(t, int64(0), stats.TotalStockValue)
	assert.Equal(t, 0, stats.RecentBills)
	assert.Equal(t, 0, stats.LowStockItems)
}

func TestCompute_LowStockBoundary(t *testing.T) {
	items := []inventory.Item{
		{Name: "AtThreshold", Quantity: 10, UnitPrice: 100},
		{Name: "Below", Quantity: 9, UnitPrice: 100},
		{Name: "Zero", Quantity: 0, UnitPrice: 100},
	}

	stats := dashboard.Compute(items, nil)

	// Quantity 10 is not low stock; the cutoff is strictly below.
	assert.Equal(t, 2, stats.LowStockItems)
	assert.Equal(t, 3, stats.TotalItems)
	assert.Equal(t, int64(1900), stats.TotalStockValue)
}
