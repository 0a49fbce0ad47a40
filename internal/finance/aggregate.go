package finance

import (
	"sort"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const DefaultCategory = "Other"

// Entry is the normalized snapshot of an income or expense used in reports.
// Label is the income source or the expense description.
type Entry struct {
	ID       uuid.UUID
	Label    string
	Category string
	Amount   decimal.Decimal
	Date     time.Time
}

// CategorySummary aggregates entries sharing a grouping key.
type CategorySummary struct {
	Category      string
	TotalAmount   decimal.Decimal
	Count         int64
	AverageAmount decimal.Decimal
	Items         []Entry
}

// GroupTotal is a store-side grouped sum.
type GroupTotal struct {
	Key         string
	TotalAmount decimal.Decimal
	Count       int64
}

type GroupKey int8

const (
	GroupByCategory GroupKey = iota
	GroupByLabel
)

// ParseGroupKey maps "category", "source" or "description" to a GroupKey.
func ParseGroupKey(s string) (GroupKey, bool) {
	switch strings.ToLower(s) {
	case "", "category":
		return GroupByCategory, true
	case "label", "source", "description":
		return GroupByLabel, true
	}
	return GroupByCategory, false
}

func (k GroupKey) of(e Entry) string {
	if k == GroupByLabel {
		return e.Label
	}
	return e.Category
}

// NormalizeCategory applies the default category to blank values.
func NormalizeCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return DefaultCategory
	}
	return category
}

// Total sums the amounts of entries.
func Total(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// Assign accumulates every entry into the bucket containing its date and
// returns the entries that fall outside the buckets. Buckets are left sorted
// by Index.
func Assign(buckets []Bucket, entries []Entry) []Entry {
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Index < buckets[j].Index
	})

	var outside []Entry
	for _, e := range entries {
		i := sort.Search(len(buckets), func(i int) bool {
			return !buckets[i].End.Before(e.Date)
		})
		if i == len(buckets) || !buckets[i].Contains(e.Date) {
			outside = append(outside, e)
			continue
		}
		b := &buckets[i]
		b.Total = b.Total.Add(e.Amount)
		b.Items = append(b.Items, e)
	}
	return outside
}

// GroupBy groups entries by key, defaulting blank keys to "Other". Groups are
// ordered by total descending, then by key.
func GroupBy(entries []Entry, key GroupKey) []CategorySummary {
	index := make(map[string]int)
	var groups []CategorySummary
	for _, e := range entries {
		k := NormalizeCategory(key.of(e))
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, CategorySummary{Category: k, TotalAmount: decimal.Zero})
		}
		g := &groups[i]
		g.TotalAmount = g.TotalAmount.Add(e.Amount)
		g.Count++
		g.Items = append(g.Items, e)
	}
	for i := range groups {
		groups[i].AverageAmount = average(groups[i].TotalAmount, groups[i].Count)
	}
	sortSummaries(groups)
	return groups
}

// SummarizeGroups converts store-side totals into summaries without items.
// Rows with the same normalized key are merged.
func SummarizeGroups(rows []GroupTotal) []CategorySummary {
	index := make(map[string]int)
	var groups []CategorySummary
	for _, row := range rows {
		k := NormalizeCategory(row.Key)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, CategorySummary{Category: k, TotalAmount: decimal.Zero})
		}
		groups[i].TotalAmount = groups[i].TotalAmount.Add(row.TotalAmount)
		groups[i].Count += row.Count
	}
	for i := range groups {
		groups[i].AverageAmount = average(groups[i].TotalAmount, groups[i].Count)
	}
	sortSummaries(groups)
	return groups
}

func average(total decimal.Decimal, count int64) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(count)).Round(2)
}

func sortSummaries(groups []CategorySummary) {
	sort.SliceStable(groups, func(i, j int) bool {
		if c := groups[i].TotalAmount.Cmp(groups[j].TotalAmount); c != 0 {
			return c > 0
		}
		return groups[i].Category < groups[j].Category
	})
}
