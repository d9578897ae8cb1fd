package ageing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []Record {
	return []Record{
		{Firm: "Shree Textiles", Total: 1750, NotDue: 1000, Days0To7: 500, Days8To30: 250},
		{Firm: "Mehta & Sons", Total: 900, Days30To200: 900},
		{Firm: "Laxmi Traders", Total: 5600, NotDue: 5600},
	}
}

func TestListFilterSearch(t *testing.T) {
	out := ListFilter{Search: "mehta"}.Apply(testRecords())
	require.Len(t, out, 1)
	assert.Equal(t, "Mehta & Sons", out[0].Firm)
}

func TestListFilterMinTotal(t *testing.T) {
	out := ListFilter{MinTotal: 1000}.Apply(testRecords())
	require.Len(t, out, 2)
	for _, rec := range out {
		assert.GreaterOrEqual(t, rec.Total, 1000.0)
	}
}

func TestListFilterHasOverdue(t *testing.T) {
	out := ListFilter{HasOverdue: true}.Apply(testRecords())
	require.Len(t, out, 1)
	assert.Equal(t, "Mehta & Sons", out[0].Firm)
}

func TestListFilterSortDefaultsToTotalDesc(t *testing.T) {
	out := ListFilter{}.Apply(testRecords())
	require.Len(t, out, 3)
	assert.Equal(t, "Laxmi Traders", out[0].Firm)
	assert.Equal(t, "Shree Textiles", out[1].Firm)
	assert.Equal(t, "Mehta & Sons", out[2].Firm)
}

func TestListFilterSortByFirm(t *testing.T) {
	out := ListFilter{SortBy: SortByFirm}.Apply(testRecords())
	assert.Equal(t, "Laxmi Traders", out[0].Firm)
	assert.Equal(t, "Mehta & Sons", out[1].Firm)
	assert.Equal(t, "Shree Textiles", out[2].Firm)
}

func TestListFilterSortByOverdue(t *testing.T) {
	out := ListFilter{SortBy: SortByOverdue}.Apply(testRecords())
	assert.Equal(t, "Mehta & Sons", out[0].Firm)
}
