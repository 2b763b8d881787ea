package gormdb

import "errors"

var (
	ErrFailedToOpenDB       = errors.New("failed to open gorm database")
	ErrFailedToCountRecords = errors.New("failed to count matching records")
)
