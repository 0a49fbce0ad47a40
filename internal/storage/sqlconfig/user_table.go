package sqlconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const usersTableName = "users"

// UsersTable provides access to the users table.
type UsersTable struct {
	exec bob.Executor
}

// Ensure UsersTable implements IUserTable at compile time.
var _ IUserTable = (*UsersTable)(nil)

// NewUsersTable creates a UsersTable bound to exec, which may be a DB or a Tx.
func NewUsersTable(exec bob.Executor) *UsersTable {
	return &UsersTable{exec: exec}
}

// FindByID retrieves a user by primary key. forUpdate locks the row until the
// surrounding transaction ends.
func (t *UsersTable) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*User, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("id", "username", "balance", "target", "created_at"),
		sm.From(usersTableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	user, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[User]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Insert creates a new user with a zero balance and returns its generated ID.
// A taken username is ErrAlreadyExists.
func (t *UsersTable) Insert(ctx context.Context, create *UserCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	query := psql.Insert(
		im.Into(usersTableName, "id", "username", "balance", "target"),
		im.Values(psql.Arg(id, create.Username, decimal.Zero, create.Target)),
	)
	if _, err = bob.Exec(ctx, t.exec, query); err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrAlreadyExists
		}
		return uuid.Nil, err
	}
	return id, nil
}

// UpdateBalance overwrites the cached balance for a given user.
func (t *UsersTable) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return t.updateColumn(ctx, id, "balance", balance)
}

// UpdateTarget sets the savings target for a given user.
func (t *UsersTable) UpdateTarget(ctx context.Context, id uuid.UUID, target decimal.Decimal) error {
	return t.updateColumn(ctx, id, "target", target)
}

func (t *UsersTable) updateColumn(ctx context.Context, id uuid.UUID, column string, value decimal.Decimal) error {
	query := psql.Update(
		um.Table(usersTableName),
		um.SetCol(column).ToArg(value),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
