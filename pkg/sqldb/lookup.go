package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

var _ validator.UniqueLookup = (*Lookup)(nil)

// Querier is the part of *sql.DB, *sql.Conn and *sql.Tx the lookup needs.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresDialect quotes with lib/pq and uses $n placeholders.
var PostgresDialect = Dialect{
	Quote: func(parts []string) string {
		quoted := make([]string, len(parts))
		for i, p := range parts {
			quoted[i] = pq.QuoteIdentifier(p)
		}
		return strings.Join(quoted, ".")
	},
	Placeholder: Dollar,
}

// Lookup answers the unique rule with a COUNT(*) query over database/sql.
type Lookup struct {
	db      Querier
	dialect Dialect
}

// LookupOption configures a Lookup.
type LookupOption func(*Lookup)

// WithDialect replaces the default PostgreSQL dialect.
func WithDialect(d Dialect) LookupOption {
	return func(l *Lookup) {
		if d.Quote != nil && d.Placeholder != nil {
			l.dialect = d
		}
	}
}

func NewLookup(db Querier, opts ...LookupOption) *Lookup {
	l := &Lookup{db: db, dialect: PostgresDialect}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CountMatching implements validator.UniqueLookup.
func (l *Lookup) CountMatching(ctx context.Context, q validator.UniqueQuery) (int64, error) {
	query, args, err := CountQuery(q, l.dialect)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := l.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Join(ErrFailedToCountRecords, err)
	}
	return count, nil
}
