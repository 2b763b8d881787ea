// Package sqldb backs the validator's unique rule with any database/sql
// driver. PostgreSQL is the default dialect; the lib/pq driver is registered
// by this package.
//
//	db, err := sqldb.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	v, err := validator.New(validator.WithUniqueLookup(sqldb.NewLookup(db)))
//
// The rule "unique:users,email,tenant_id,id" becomes
//
//	SELECT COUNT(*) FROM "users" WHERE "email" = $1 AND "tenant_id" <> $2 AND "id" <> $3
//
// Table and column names must be plain identifiers, optionally schema
// qualified. Anything else is reported as a misconfigured rule rather than
// reaching the database.
package sqldb
