package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

var _ validator.UniqueLookup = (*Lookup)(nil)

// Counter is the part of *mongo.Collection the lookup needs.
type Counter interface {
	CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error)
}

// Lookup answers the unique rule with CountDocuments. The rule's table
// parameter names the collection.
type Lookup struct {
	collection func(name string) Counter
	fields     map[string]string
}

// LookupOption configures a Lookup.
type LookupOption func(*Lookup)

// WithFieldMap renames rule columns to document fields, e.g. {"id": "_id"}.
func WithFieldMap(fields map[string]string) LookupOption {
	return func(l *Lookup) {
		for k, v := range fields {
			l.fields[k] = v
		}
	}
}

// NewLookup counts documents in collections of db.
func NewLookup(db *mongo.Database, opts ...LookupOption) *Lookup {
	return NewLookupFunc(func(name string) Counter { return db.Collection(name) }, opts...)
}

// NewLookupFunc resolves collections through fn.
func NewLookupFunc(fn func(name string) Counter, opts ...LookupOption) *Lookup {
	l := &Lookup{collection: fn, fields: map[string]string{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CountMatching implements validator.UniqueLookup.
func (l *Lookup) CountMatching(ctx context.Context, q validator.UniqueQuery) (int64, error) {
	if q.Table == "" || q.Column == "" {
		return 0, &validator.ConfigError{
			Rule:    "unique",
			Message: "The unique validation rule requires a collection and a field.",
			Err:     validator.ErrInvalidParam,
		}
	}

	n, err := l.collection(q.Table).CountDocuments(ctx, l.Filter(q))
	if err != nil {
		return 0, errors.Join(ErrFailedToCountDocuments, err)
	}
	return n, nil
}

// Filter renders q as a CountDocuments filter. Hex strings compared against
// _id are converted to ObjectIDs.
func (l *Lookup) Filter(q validator.UniqueQuery) bson.D {
	key := l.field(q.Column)
	filter := bson.D{{Key: key, Value: docValue(key, q.Value)}}
	if q.ExceptColumn != "" {
		key := l.field(q.ExceptColumn)
		filter = append(filter, bson.E{Key: key, Value: bson.D{{Key: "$ne", Value: docValue(key, q.ExceptValue)}}})
	}
	if q.IDColumn != "" {
		key := l.field(q.IDColumn)
		filter = append(filter, bson.E{Key: key, Value: bson.D{{Key: "$ne", Value: docValue(key, q.IDValue)}}})
	}
	return filter
}

func docValue(key string, v any) any {
	s, ok := v.(string)
	if !ok || key != "_id" {
		return v
	}
	if id, err := bson.ObjectIDFromHex(s); err == nil {
		return id
	}
	return v
}

func (l *Lookup) field(name string) string {
	if mapped, ok := l.fields[name]; ok {
		return mapped
	}
	return name
}
