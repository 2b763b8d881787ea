package sqldb

import "errors"

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrEmptyConnectionString    = errors.New("empty database connection string")
	ErrInvalidIdentifier        = errors.New("invalid sql identifier")
	ErrFailedToCountRecords     = errors.New("failed to count matching records")
)
