package finance

import "github.com/shopspring/decimal"

// Progress is the savings balance measured against the user's target.
type Progress struct {
	Balance         decimal.Decimal
	Target          decimal.Decimal
	ProgressPercent decimal.Decimal
}

// Reconciliation is the outcome of recomputing a balance from the ledger.
type Reconciliation struct {
	Balance      decimal.Decimal
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}

// Reconcile derives the balance from ledger totals. Negative balances are kept.
func Reconcile(totalIncome, totalExpense decimal.Decimal) Reconciliation {
	return Reconciliation{
		Balance:      totalIncome.Sub(totalExpense),
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
	}
}

// EvaluateProgress fails with ErrInvalidTarget for a zero target. The
// percentage is not clamped.
func EvaluateProgress(balance, target decimal.Decimal) (Progress, error) {
	pct, ok := Percent(balance, target)
	if !ok {
		return Progress{}, ErrInvalidTarget
	}
	return Progress{
		Balance:         balance,
		Target:          target,
		ProgressPercent: pct,
	}, nil
}
