package pg_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/pg"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

type mockQuerier struct {
	mock.Mock
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.Called(ctx, sql, args).Get(0).(pgx.Row)
}

type countRow struct {
	count int64
	err   error
}

func (r countRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.count
	return nil
}

func TestLookup(t *testing.T) {
	t.Parallel()

	t.Run("counts with sanitized identifiers", func(t *testing.T) {
		db := &mockQuerier{}
		db.On("QueryRow", mock.Anything,
			`SELECT COUNT(*) FROM "app"."users" WHERE "email" = $1 AND "tenant" <> $2 AND "id" <> $3`,
			[]any{"a@example.com", "acme", int64(9)},
		).Return(countRow{count: 3}).Once()

		n, err := pg.NewLookup(db).CountMatching(t.Context(), validator.UniqueQuery{
			Table: "app.users", Column: "email", Value: "a@example.com",
			ExceptColumn: "tenant", ExceptValue: "acme",
			IDColumn: "id", IDValue: int64(9),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		db.AssertExpectations(t)
	})

	t.Run("scan errors are wrapped", func(t *testing.T) {
		boom := errors.New("connection reset")
		db := &mockQuerier{}
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(countRow{err: boom})

		_, err := pg.NewLookup(db).CountMatching(t.Context(), validator.UniqueQuery{Table: "users", Column: "email"})
		assert.ErrorIs(t, err, pg.ErrFailedToCountRecords)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("invalid identifiers never reach the database", func(t *testing.T) {
		db := &mockQuerier{}
		_, err := pg.NewLookup(db).CountMatching(t.Context(), validator.UniqueQuery{Table: "users", Column: `email"; --`})
		assert.True(t, validator.IsMisconfigured(err))
		db.AssertNotCalled(t, "QueryRow", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("drives the unique rule", func(t *testing.T) {
		db := &mockQuerier{}
		db.On("QueryRow", mock.Anything, `SELECT COUNT(*) FROM "users" WHERE "login" = $1`, []any{"bob"}).
			Return(countRow{count: 0})

		v, err := validator.Validate(t.Context(),
			validator.Inputs{"login": "bob"},
			map[string]string{"login": "required|alpha_num|unique:users,login"},
			validator.WithUniqueLookup(pg.NewLookup(db)),
		)
		require.NoError(t, err)
		assert.True(t, v.Passed())
	})
}

func TestConnect(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(t.Context(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(t.Context(), pg.Config{ConnectionString: "postgres://%zz"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}
