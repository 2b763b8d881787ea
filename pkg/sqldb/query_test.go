package sqldb_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/sqldb"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

func TestSplitIdentifier(t *testing.T) {
	t.Parallel()

	parts, err := sqldb.SplitIdentifier("users")
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, parts)

	parts, err = sqldb.SplitIdentifier("public.users")
	require.NoError(t, err)
	assert.Equal(t, []string{"public", "users"}, parts)

	for _, bad := range []string{"", "a.b.c", "users;drop", "1users", `us"ers`, "users ", "a."} {
		_, err := sqldb.SplitIdentifier(bad)
		assert.ErrorIs(t, err, sqldb.ErrInvalidIdentifier, bad)
	}
}

func TestCountQuery(t *testing.T) {
	t.Parallel()

	t.Run("postgres dialect", func(t *testing.T) {
		query, args, err := sqldb.CountQuery(validator.UniqueQuery{
			Table: "public.users", Column: "email", Value: "a@example.com",
			ExceptColumn: "tenant_id", ExceptValue: "acme",
			IDColumn: "id", IDValue: 7,
		}, sqldb.PostgresDialect)
		require.NoError(t, err)

		assert.Equal(t, `SELECT COUNT(*) FROM "public"."users" WHERE "email" = $1 AND "tenant_id" <> $2 AND "id" <> $3`, query)
		assert.Equal(t, []any{"a@example.com", "acme", 7}, args)
	})

	t.Run("id exclusion alone", func(t *testing.T) {
		query, args, err := sqldb.CountQuery(validator.UniqueQuery{
			Table: "users", Column: "email", Value: "a", IDColumn: "id", IDValue: 3,
		}, sqldb.PostgresDialect)
		require.NoError(t, err)

		assert.Equal(t, `SELECT COUNT(*) FROM "users" WHERE "email" = $1 AND "id" <> $2`, query)
		assert.Equal(t, []any{"a", 3}, args)
	})

	t.Run("custom dialect", func(t *testing.T) {
		backtick := sqldb.Dialect{
			Quote:       func(parts []string) string { return "`" + strings.Join(parts, "`.`") + "`" },
			Placeholder: sqldb.Question,
		}
		query, _, err := sqldb.CountQuery(validator.UniqueQuery{
			Table: "users", Column: "login", Value: "bob", ExceptColumn: "org", ExceptValue: 1,
		}, backtick)
		require.NoError(t, err)
		assert.Equal(t, "SELECT COUNT(*) FROM `users` WHERE `login` = ? AND `org` <> ?", query)
	})

	t.Run("invalid identifiers are misconfiguration", func(t *testing.T) {
		for _, q := range []validator.UniqueQuery{
			{Table: "users;--", Column: "email"},
			{Table: "users", Column: "email or 1=1"},
			{Table: "users", Column: "email", ExceptColumn: "x y"},
			{Table: "users", Column: "email", IDColumn: "id)"},
		} {
			_, _, err := sqldb.CountQuery(q, sqldb.PostgresDialect)
			require.Error(t, err)

			var cfgErr *validator.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "unique", cfgErr.Rule)
			assert.ErrorIs(t, err, validator.ErrInvalidParam)
			assert.ErrorIs(t, err, sqldb.ErrInvalidIdentifier)
		}
	})
}
