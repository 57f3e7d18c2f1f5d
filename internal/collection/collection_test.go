package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockscan/internal/collection"
	"stockscan/internal/inventory"
)

var itemDesc = collection.Descriptor[inventory.Item]{
	SearchText: func(i inventory.Item) []string { return []string{i.Name, i.SKU} },
	Metric:     func(i inventory.Item) int64 { return i.LineValue() },
}

func testItems() []inventory.Item {
	return []inventory.Item{
		{Name: "Sugar", SKU: "SUG-01", Quantity: 20, UnitPrice: 150},
		{Name: "Flour", SKU: "FLR-01", Quantity: 5, UnitPrice: 200},
		{Name: "Brown Sugar", SKU: "SUG-02", Quantity: 8, UnitPrice: 180},
		{Name: "Salt", SKU: "", Quantity: 50, UnitPrice: 90},
	}
}

func TestFilter(t *testing.T) {
	type testCase struct {
		name      string
		term      string
		wantNames []string
	}

	tests := []testCase{
		{
			name:      "EmptyTermReturnsAll",
			term:      "",
			wantNames: []string{"Sugar", "Flour", "Brown Sugar", "Salt"},
		},
		{
			name:      "CaseInsensitiveSubstring",
			term:      "sUgAr",
			wantNames: []string{"Sugar", "Brown Sugar"},
		},
		{
			name:      "MatchesSecondaryField",
			term:      "sug-02",
			wantNames: []string{"Brown Sugar"},
		},
		{
			name:      "NoMatches",
			term:      "zzz",
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collection.Filter(testItems(), tt.term, itemDesc)

			names := make([]string, 0, len(got))
			for _, item := range got {
				names = append(names, item.Name)
			}

			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestFilter_AlwaysAgainstFullSnapshot(t *testing.T) {
	rows := testItems()

	// Narrow, then broaden: the broader term must match against the full
	// snapshot, not the previously narrowed result.
	narrowed := collection.Filter(rows, "brown", itemDesc)
	assert.Len(t, narrowed, 1)

	broadened := collection.Filter(rows, "sugar", itemDesc)
	assert.Len(t, broadened, 2)

	cleared := collection.Filter(rows, "", itemDesc)
	assert.Equal(t, rows, cleared)
}

func TestMetricSum(t *testing.T) {
	rows := testItems()

	// 20*150 + 5*200 + 8*180 + 50*90 = 3000 + 1000 + 1440 + 4500
	assert.Equal(t, int64(9940), collection.MetricSum(rows, itemDesc))

	assert.Equal(t, int64(0), collection.MetricSum(nil, itemDesc))
	assert.Equal(t, int64(0), collection.MetricSum([]inventory.Item{}, itemDesc))
}

func TestMetricSum_FollowsFilter(t *testing.T) {
	rows := testItems()

	filtered := collection.Filter(rows, "sugar", itemDesc)

	// 20*150 + 8*180
	assert.Equal(t, int64(4440), collection.MetricSum(filtered, itemDesc))

	// Clearing the filter restores the full totals.
	restored := collection.Filter(rows, "", itemDesc)
	assert.Equal(t, int64(9940), collection.MetricSum(restored, itemDesc))
}
