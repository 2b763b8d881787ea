package redis

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cast"

	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

var _ validator.UniqueLookup = (*Lookup)(nil)

// SetClient is the subset of redis.UniversalClient the lookup uses.
type SetClient interface {
	SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...any) *redis.IntCmd
	SCard(ctx context.Context, key string) *redis.IntCmd
	SMIsMember(ctx context.Context, key string, members ...any) *redis.BoolSliceCmd
}

// Lookup answers the unique rule from set-based indexes kept in Redis.
//
// Every indexed value owns a set at <prefix><table>:<column>:<value> whose
// members identify the records holding it. The count is the set cardinality
// minus the members equal to the except or id values of the query.
type Lookup struct {
	client SetClient
	prefix string
}

// LookupOption configures a Lookup.
type LookupOption func(*Lookup)

// WithKeyPrefix overrides the default "unique:" key prefix.
func WithKeyPrefix(prefix string) LookupOption {
	return func(l *Lookup) {
		l.prefix = prefix
	}
}

func NewLookup(client SetClient, opts ...LookupOption) *Lookup {
	l := &Lookup{client: client, prefix: "unique:"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Key returns the index key for value of table.column.
func (l *Lookup) Key(table, column string, value any) string {
	return l.prefix + strings.Join([]string{table, column, cast.ToString(value)}, ":")
}

// Index records that the record identified by member holds value.
func (l *Lookup) Index(ctx context.Context, table, column string, value, member any) error {
	if err := l.client.SAdd(ctx, l.Key(table, column, value), cast.ToString(member)).Err(); err != nil {
		return errors.Join(ErrFailedToUpdateIndex, err)
	}
	return nil
}

// Unindex removes member from the index of value.
func (l *Lookup) Unindex(ctx context.Context, table, column string, value, member any) error {
	if err := l.client.SRem(ctx, l.Key(table, column, value), cast.ToString(member)).Err(); err != nil {
		return errors.Join(ErrFailedToUpdateIndex, err)
	}
	return nil
}

// CountMatching implements validator.UniqueLookup.
func (l *Lookup) CountMatching(ctx context.Context, q validator.UniqueQuery) (int64, error) {
	key := l.Key(q.Table, q.Column, q.Value)

	count, err := l.client.SCard(ctx, key).Result()
	if err != nil {
		return 0, errors.Join(ErrFailedToCountMembers, err)
	}

	excluded := exclusions(q)
	if count == 0 || len(excluded) == 0 {
		return count, nil
	}

	found, err := l.client.SMIsMember(ctx, key, excluded...).Result()
	if err != nil {
		return 0, errors.Join(ErrFailedToCountMembers, err)
	}
	for _, ok := range found {
		if ok {
			count--
		}
	}
	return max(count, 0), nil
}

func exclusions(q validator.UniqueQuery) []any {
	var members []any
	for _, ex := range []struct {
		column string
		value  any
	}{{q.ExceptColumn, q.ExceptValue}, {q.IDColumn, q.IDValue}} {
		if ex.column == "" {
			continue
		}
		m := cast.ToString(ex.value)
		if m == "" || (len(members) == 1 && members[0] == m) {
			continue
		}
		members = append(members, m)
	}
	return members
}
