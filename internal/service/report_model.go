package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// BucketReport is a ledger broken down into consecutive periods.
type BucketReport struct {
	Kind    Kind
	Start   time.Time
	End     time.Time
	Total   decimal.Decimal
	Buckets []finance.Bucket
	// Uncovered counts fetched entries that fell outside every bucket.
	Uncovered int
}

// CashFlowWeek puts both ledgers of one week side by side.
type CashFlowWeek struct {
	Index   int
	Start   time.Time
	End     time.Time
	Income  finance.Bucket
	Expense finance.Bucket
	Net     decimal.Decimal
}

type CashFlowReport struct {
	Start        time.Time
	End          time.Time
	Weeks        []CashFlowWeek
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Net          decimal.Decimal
}

// CategoryQuery selects what CategoryReport groups. Nil bounds are open.
type CategoryQuery struct {
	Kind      Kind
	Key       finance.GroupKey
	Start     *time.Time
	End       *time.Time
	WithItems bool
}

func groupColumn(key finance.GroupKey) sqlconfig.GroupColumn {
	if key == finance.GroupByLabel {
		return sqlconfig.GroupColumnLabel
	}
	return sqlconfig.GroupColumnCategory
}

func groupTotalsFromStorage(rows []*sqlconfig.GroupTotal) []finance.GroupTotal {
	totals := make([]finance.GroupTotal, len(rows))
	for i, row := range rows {
		totals[i] = finance.GroupTotal{
			Key:         row.Key,
			TotalAmount: row.TotalAmount,
			Count:       row.Count,
		}
	}
	return totals
}
