package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/fieldrules/pkg/sqldb"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

var _ validator.UniqueLookup = (*Lookup)(nil)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Dialect quotes identifiers with pgx.Identifier.
var Dialect = sqldb.Dialect{
	Quote:       func(parts []string) string { return pgx.Identifier(parts).Sanitize() },
	Placeholder: sqldb.Dollar,
}

// Lookup answers the unique rule against PostgreSQL through pgx.
type Lookup struct {
	db Querier
}

func NewLookup(db Querier) *Lookup {
	return &Lookup{db: db}
}

// CountMatching implements validator.UniqueLookup.
func (l *Lookup) CountMatching(ctx context.Context, q validator.UniqueQuery) (int64, error) {
	query, args, err := sqldb.CountQuery(q, Dialect)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := l.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Join(ErrFailedToCountRecords, err)
	}
	return count, nil
}
