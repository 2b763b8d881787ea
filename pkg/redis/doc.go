// Package redis connects to Redis with go-redis and backs the validator's
// unique rule with set-based indexes.
//
// Connect retries the initial ping using Config, which is populated from
// environment variables:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	lookup := redis.NewLookup(client, redis.WithKeyPrefix(cfg.KeyPrefix))
//
// The application keeps the indexes current as records change:
//
//	_ = lookup.Index(ctx, "users", "email", user.Email, user.ID)
//	_ = lookup.Unindex(ctx, "users", "email", oldEmail, user.ID)
//
// A rule such as "unique:users,email,,id" then counts the members of
// unique:users:email:<value>, ignoring the member equal to the submitted id.
package redis
