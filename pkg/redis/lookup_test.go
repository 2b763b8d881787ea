package redis_test

import (
	"context"
	"errors"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/redis"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

type mockSets struct {
	mock.Mock
}

func (m *mockSets) SAdd(ctx context.Context, key string, members ...any) *goredis.IntCmd {
	args := m.Called(ctx, key, members)
	return goredis.NewIntResult(args.Get(0).(int64), args.Error(1))
}

func (m *mockSets) SRem(ctx context.Context, key string, members ...any) *goredis.IntCmd {
	args := m.Called(ctx, key, members)
	return goredis.NewIntResult(args.Get(0).(int64), args.Error(1))
}

func (m *mockSets) SCard(ctx context.Context, key string) *goredis.IntCmd {
	args := m.Called(ctx, key)
	return goredis.NewIntResult(args.Get(0).(int64), args.Error(1))
}

func (m *mockSets) SMIsMember(ctx context.Context, key string, members ...any) *goredis.BoolSliceCmd {
	args := m.Called(ctx, key, members)
	return goredis.NewBoolSliceResult(args.Get(0).([]bool), args.Error(1))
}

func TestLookupKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unique:users:email:a@example.com", redis.NewLookup(nil).Key("users", "email", "a@example.com"))
	assert.Equal(t, "idx/users:age:42", redis.NewLookup(nil, redis.WithKeyPrefix("idx/")).Key("users", "age", 42))
}

func TestLookupCountMatching(t *testing.T) {
	t.Parallel()

	t.Run("cardinality without exclusions", func(t *testing.T) {
		sets := &mockSets{}
		sets.On("SCard", mock.Anything, "unique:users:email:a@example.com").Return(int64(2), nil).Once()

		n, err := redis.NewLookup(sets).CountMatching(t.Context(),
			validator.UniqueQuery{Table: "users", Column: "email", Value: "a@example.com"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		sets.AssertNotCalled(t, "SMIsMember", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("excluded members are subtracted", func(t *testing.T) {
		sets := &mockSets{}
		sets.On("SCard", mock.Anything, "unique:users:email:a@example.com").Return(int64(2), nil)
		sets.On("SMIsMember", mock.Anything, "unique:users:email:a@example.com", []any{"acme", "7"}).
			Return([]bool{false, true}, nil).Once()

		n, err := redis.NewLookup(sets).CountMatching(t.Context(), validator.UniqueQuery{
			Table: "users", Column: "email", Value: "a@example.com",
			ExceptColumn: "tenant", ExceptValue: "acme",
			IDColumn: "id", IDValue: 7,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		sets.AssertExpectations(t)
	})

	t.Run("duplicate exclusions count once", func(t *testing.T) {
		sets := &mockSets{}
		sets.On("SCard", mock.Anything, mock.Anything).Return(int64(1), nil)
		sets.On("SMIsMember", mock.Anything, mock.Anything, []any{"7"}).Return([]bool{true}, nil).Once()

		n, err := redis.NewLookup(sets).CountMatching(t.Context(), validator.UniqueQuery{
			Table: "users", Column: "email", Value: "x",
			ExceptColumn: "id", ExceptValue: "7",
			IDColumn: "id", IDValue: 7,
		})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("empty set skips membership check", func(t *testing.T) {
		sets := &mockSets{}
		sets.On("SCard", mock.Anything, mock.Anything).Return(int64(0), nil)

		n, err := redis.NewLookup(sets).CountMatching(t.Context(), validator.UniqueQuery{
			Table: "users", Column: "email", Value: "x", IDColumn: "id", IDValue: 1,
		})
		require.NoError(t, err)
		assert.Zero(t, n)
		sets.AssertNotCalled(t, "SMIsMember", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("errors are wrapped", func(t *testing.T) {
		boom := errors.New("LOADING")
		sets := &mockSets{}
		sets.On("SCard", mock.Anything, mock.Anything).Return(int64(0), boom)

		_, err := redis.NewLookup(sets).CountMatching(t.Context(), validator.UniqueQuery{Table: "t", Column: "c", Value: "v"})
		assert.ErrorIs(t, err, redis.ErrFailedToCountMembers)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("drives the unique rule", func(t *testing.T) {
		sets := &mockSets{}
		sets.On("SCard", mock.Anything, "unique:users:login:bob").Return(int64(1), nil)
		sets.On("SMIsMember", mock.Anything, "unique:users:login:bob", []any{"3"}).Return([]bool{true}, nil)

		v, err := validator.Validate(t.Context(),
			validator.Inputs{"login": "bob", "id": "3"},
			map[string]string{"login": "unique:users,login,,id"},
			validator.WithUniqueLookup(redis.NewLookup(sets)),
		)
		require.NoError(t, err)
		assert.True(t, v.Passed())
	})
}

func TestLookupIndex(t *testing.T) {
	t.Parallel()

	sets := &mockSets{}
	sets.On("SAdd", mock.Anything, "unique:users:email:a@example.com", []any{"7"}).Return(int64(1), nil).Once()
	sets.On("SRem", mock.Anything, "unique:users:email:old@example.com", []any{"7"}).Return(int64(1), nil).Once()
	sets.On("SAdd", mock.Anything, "unique:users:email:b@example.com", []any{"8"}).Return(int64(0), errors.New("READONLY"))

	lookup := redis.NewLookup(sets)
	require.NoError(t, lookup.Index(t.Context(), "users", "email", "a@example.com", 7))
	require.NoError(t, lookup.Unindex(t.Context(), "users", "email", "old@example.com", 7))
	assert.ErrorIs(t, lookup.Index(t.Context(), "users", "email", "b@example.com", 8), redis.ErrFailedToUpdateIndex)
	sets.AssertExpectations(t)
}

func TestConnect(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(t.Context(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Connect(t.Context(), redis.Config{ConnectionURL: "http://not-redis"})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
}
