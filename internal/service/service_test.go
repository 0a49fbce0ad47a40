package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
	"github.com/carson-networks/finance-tracker/internal/storage/storagetest"
)

// inlineProcessor performs actions directly against the mock tables.
type inlineProcessor struct {
	tables *storagetest.Tables
	calls  []actions.IAction
}

func (p *inlineProcessor) Process(ctx context.Context, action actions.IAction) error {
	p.calls = append(p.calls, action)
	return action.Perform(ctx, p.tables.Writer())
}

func newTestService() (*Service, *storagetest.Tables, *inlineProcessor) {
	tables := storagetest.NewTables()
	processor := &inlineProcessor{tables: tables}
	return NewService(tables.Storage(), processor), tables, processor
}

var testUserID = uuid.Must(uuid.FromString("0b8e7f0c-77f4-4c1f-a9a3-5d2d1f3c0b11"))

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func ledgerRow(amount string, category, label string, date time.Time) *sqlconfig.LedgerEntry {
	return &sqlconfig.LedgerEntry{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    testUserID,
		Amount:    mustDecimal(amount),
		Category:  category,
		Label:     label,
		Date:      date,
		CreatedAt: date,
	}
}

func rangeFilter(scope *uuid.UUID, start, end time.Time) interface{} {
	return mock.MatchedBy(func(f *sqlconfig.LedgerFilter) bool {
		if (scope == nil) != (f.UserID == nil) || (scope != nil && *scope != *f.UserID) {
			return false
		}
		return f.Start != nil && f.Start.Equal(start) &&
			f.End != nil && f.End.Equal(end) &&
			f.Ascending
	})
}
