// Package mongo backs the validator's unique rule with MongoDB.
//
// The rule "unique:users,email,tenant,id" counts documents of the users
// collection where email equals the value and tenant and id differ from the
// submitted inputs:
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	lookup := mongo.NewLookup(db, mongo.WithFieldMap(map[string]string{"id": "_id"}))
//	v, err := validator.New(validator.WithUniqueLookup(lookup))
package mongo
