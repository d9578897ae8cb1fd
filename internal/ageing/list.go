package ageing

import (
	"sort"
	"strings"
)

// Sort orders accepted by the ageing list view.
const (
	SortByTotal   = "total"
	SortByFirm    = "firm"
	SortByOverdue = "overdue"
)

// ListFilter narrows and orders the per-firm ageing list.
type ListFilter struct {
	Search     string
	MinTotal   float64
	HasOverdue bool   // keep only firms with amounts in the 30-200 window
	SortBy     string // total (default) | firm | overdue
}

// Apply returns the matching records in the requested order.
func (f ListFilter) Apply(records []Record) []Record {
	matched := make([]Record, 0, len(records))
	needle := strings.ToLower(f.Search)
	for _, rec := range records {
		if needle != "" && !strings.Contains(strings.ToLower(rec.Firm), needle) {
			continue
		}
		if f.MinTotal > 0 && rec.Total < f.MinTotal {
			continue
		}
		if f.HasOverdue && rec.Days30To200 <= 0 {
			continue
		}
		matched = append(matched, rec)
	}

	switch f.SortBy {
	case SortByFirm:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Firm < matched[j].Firm
		})
	case SortByOverdue:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Days30To200 > matched[j].Days30To200
		})
	default:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Total > matched[j].Total
		})
	}
	return matched
}
