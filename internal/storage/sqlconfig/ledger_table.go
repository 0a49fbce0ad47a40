package sqlconfig

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ ILedgerTable = (*LedgerTable)(nil)

// LedgerTable provides access to the incomes or the expenses table.
type LedgerTable struct {
	exec bob.Executor
	kind LedgerKind
}

func NewLedgerTable(exec bob.Executor, kind LedgerKind) *LedgerTable {
	return &LedgerTable{exec: exec, kind: kind}
}

func (t *LedgerTable) Kind() LedgerKind {
	return t.kind
}

// Insert creates a new entry and returns its generated ID.
func (t *LedgerTable) Insert(ctx context.Context, create *LedgerCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	columns := []string{"id", "user_id", "amount", "category", t.kind.labelColumn()}
	values := []any{id, create.UserID, create.Amount, create.Category, create.Label}
	if !create.Date.IsZero() {
		columns = append(columns, "date")
		values = append(values, create.Date)
	}

	query := psql.Insert(
		im.Into(t.kind.table(), columns...),
		im.Values(psql.Arg(values...)),
	)
	if _, err = bob.Exec(ctx, t.exec, query); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update rewrites an entry owned by update.UserID.
func (t *LedgerTable) Update(ctx context.Context, update *LedgerUpdate) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(t.kind.table()),
		um.SetCol("amount").ToArg(update.Amount),
		um.SetCol("category").ToArg(update.Category),
		um.SetCol(t.kind.labelColumn()).ToArg(update.Label),
		um.Where(psql.And(
			psql.Quote("id").EQ(psql.Arg(update.ID)),
			psql.Quote("user_id").EQ(psql.Arg(update.UserID)),
		)),
	}
	if update.Date != nil {
		queryMods = append(queryMods, um.SetCol("date").ToArg(*update.Date))
	}

	result, err := bob.Exec(ctx, t.exec, psql.Update(queryMods...))
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes an entry owned by userID.
func (t *LedgerTable) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(t.kind.table()),
		dm.Where(psql.And(
			psql.Quote("id").EQ(psql.Arg(id)),
			psql.Quote("user_id").EQ(psql.Arg(userID)),
		)),
	)
	result, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// List returns entries matching the filter. Nil filter returns all.
func (t *LedgerTable) List(ctx context.Context, filter *LedgerFilter) ([]*LedgerEntry, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("id", "user_id", "amount", "category", t.kind.labelColumn()+" AS label", "date", "created_at"),
		sm.From(t.kind.table()),
	}
	queryMods = append(queryMods, whereMods(filter)...)

	if filter != nil && filter.Ascending {
		queryMods = append(queryMods,
			sm.OrderBy("date").Asc(),
			sm.OrderBy("id").Asc(),
		)
	} else {
		queryMods = append(queryMods,
			sm.OrderBy("created_at").Desc(),
			sm.OrderBy("id").Desc(),
		)
	}
	if filter != nil {
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*LedgerEntry]())
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Sum totals the amounts matching the filter, zero when nothing matches.
func (t *LedgerTable) Sum(ctx context.Context, filter *LedgerFilter) (decimal.Decimal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("COALESCE(SUM(amount), 0)"),
		sm.From(t.kind.table()),
	}
	queryMods = append(queryMods, whereMods(filter)...)

	return bob.One(ctx, t.exec, psql.Select(queryMods...), scan.SingleColumnMapper[decimal.Decimal])
}

// GroupSum totals and counts the matching entries per category or label.
func (t *LedgerTable) GroupSum(ctx context.Context, filter *LedgerFilter, column GroupColumn) ([]*GroupTotal, error) {
	key := "category"
	if column == GroupColumnLabel {
		key = t.kind.labelColumn()
	}

	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			fmt.Sprintf("%s AS key", key),
			"SUM(amount) AS total_amount",
			"COUNT(*) AS count",
		),
		sm.From(t.kind.table()),
	}
	queryMods = append(queryMods, whereMods(filter)...)
	queryMods = append(queryMods,
		sm.GroupBy(key),
		sm.OrderBy("total_amount").Desc(),
	)

	return bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*GroupTotal]())
}

func whereMods(filter *LedgerFilter) []bob.Mod[*dialect.SelectQuery] {
	if filter == nil {
		return nil
	}

	var conditions []bob.Expression
	if filter.UserID != nil {
		conditions = append(conditions, psql.Quote("user_id").EQ(psql.Arg(*filter.UserID)))
	}
	if filter.Start != nil {
		conditions = append(conditions, psql.Quote("date").GTE(psql.Arg(*filter.Start)))
	}
	if filter.End != nil {
		conditions = append(conditions, psql.Quote("date").LTE(psql.Arg(*filter.End)))
	}
	if filter.MaxCreationTime != nil {
		conditions = append(conditions, psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime)))
	}

	if len(conditions) == 0 {
		return nil
	}
	return []bob.Mod[*dialect.SelectQuery]{sm.Where(psql.And(conditions...))}
}
