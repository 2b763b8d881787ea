package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrEmptyConnectionURL           = errors.New("empty redis connection URL")
	ErrFailedToCountMembers         = errors.New("failed to count uniqueness index members")
	ErrFailedToUpdateIndex          = errors.New("failed to update uniqueness index")
)
