package mongo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/fieldrules/pkg/mongo"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

type mockCounter struct {
	mock.Mock
}

func (m *mockCounter) CountDocuments(ctx context.Context, filter any, _ ...options.Lister[options.CountOptions]) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func collections(t *testing.T, want string, c mongo.Counter) func(string) mongo.Counter {
	return func(name string) mongo.Counter {
		assert.Equal(t, want, name)
		return c
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	t.Run("filter with exclusions", func(t *testing.T) {
		c := &mockCounter{}
		c.On("CountDocuments", mock.Anything, bson.D{
			{Key: "email", Value: "a@example.com"},
			{Key: "tenant", Value: bson.D{{Key: "$ne", Value: "acme"}}},
			{Key: "_id", Value: bson.D{{Key: "$ne", Value: "665f1c"}}},
		}).Return(int64(1), nil).Once()

		lookup := mongo.NewLookupFunc(collections(t, "users", c), mongo.WithFieldMap(map[string]string{"id": "_id"}))
		n, err := lookup.CountMatching(t.Context(), validator.UniqueQuery{
			Table: "users", Column: "email", Value: "a@example.com",
			ExceptColumn: "tenant", ExceptValue: "acme",
			IDColumn: "id", IDValue: "665f1c",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		c.AssertExpectations(t)
	})

	t.Run("hex ids match object ids", func(t *testing.T) {
		id, err := bson.ObjectIDFromHex("665f1c2ab3d4e5f607182930")
		require.NoError(t, err)

		lookup := mongo.NewLookupFunc(nil, mongo.WithFieldMap(map[string]string{"id": "_id"}))
		assert.Equal(t, bson.D{
			{Key: "email", Value: "a@example.com"},
			{Key: "_id", Value: bson.D{{Key: "$ne", Value: id}}},
		}, lookup.Filter(validator.UniqueQuery{
			Table: "users", Column: "email", Value: "a@example.com",
			IDColumn: "id", IDValue: "665f1c2ab3d4e5f607182930",
		}))
		assert.Equal(t, bson.D{{Key: "_id", Value: id}},
			lookup.Filter(validator.UniqueQuery{Table: "users", Column: "_id", Value: "665f1c2ab3d4e5f607182930"}))
		assert.Equal(t, bson.D{{Key: "code", Value: "665f1c2ab3d4e5f607182930"}},
			lookup.Filter(validator.UniqueQuery{Table: "users", Column: "code", Value: "665f1c2ab3d4e5f607182930"}))
	})

	t.Run("plain filter", func(t *testing.T) {
		lookup := mongo.NewLookupFunc(nil)
		assert.Equal(t, bson.D{{Key: "login", Value: "bob"}},
			lookup.Filter(validator.UniqueQuery{Table: "users", Column: "login", Value: "bob"}))
	})

	t.Run("driver errors are wrapped", func(t *testing.T) {
		boom := errors.New("server selection timeout")
		c := &mockCounter{}
		c.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), boom)

		_, err := mongo.NewLookupFunc(collections(t, "users", c)).CountMatching(t.Context(),
			validator.UniqueQuery{Table: "users", Column: "email", Value: "x"})
		assert.ErrorIs(t, err, mongo.ErrFailedToCountDocuments)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("drives the unique rule", func(t *testing.T) {
		c := &mockCounter{}
		c.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(2), nil)

		v, err := validator.Validate(t.Context(),
			validator.Inputs{"slug": "hello"},
			map[string]string{"slug": "unique:posts,slug"},
			validator.WithUniqueLookup(mongo.NewLookupFunc(collections(t, "posts", c))),
		)
		require.NoError(t, err)

		msg, ok := v.FirstError("slug")
		require.True(t, ok)
		assert.Equal(t, "The slug has already been taken.", msg)
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := mongo.New(t.Context(), mongo.Config{ConnectionURL: "not-a-mongo-uri", RetryAttempts: 1})
	assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
}
