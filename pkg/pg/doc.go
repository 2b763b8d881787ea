// Package pg backs the validator's unique rule with PostgreSQL through the
// pgx/v5 driver.
//
// Config is populated from environment variables (see the field tags) and
// Connect opens a *pgxpool.Pool, retrying with a growing delay until the
// database answers a ping:
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	v, err := validator.New(validator.WithUniqueLookup(pg.NewLookup(pool)))
//
// Lookup issues a single SELECT COUNT(*) per unique rule. Identifiers are
// checked and quoted with pgx.Identifier; values are always bound as
// parameters.
package pg
