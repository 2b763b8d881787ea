package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dmitrymomot/fieldrules/pkg/sqldb"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

var _ validator.UniqueLookup = (*Lookup)(nil)

// Lookup answers the unique rule through an existing *gorm.DB, so the
// dialect and quoting follow whatever driver the application opened.
type Lookup struct {
	db *gorm.DB
}

func NewLookup(db *gorm.DB) *Lookup {
	return &Lookup{db: db}
}

// CountMatching implements validator.UniqueLookup.
func (l *Lookup) CountMatching(ctx context.Context, q validator.UniqueQuery) (int64, error) {
	for _, name := range []string{q.Table, q.Column, q.ExceptColumn, q.IDColumn} {
		if name == "" {
			continue
		}
		if _, err := sqldb.SplitIdentifier(name); err != nil {
			return 0, &validator.ConfigError{
				Rule:    "unique",
				Message: fmt.Sprintf("The unique validation rule got an invalid identifier %q.", name),
				Err:     fmt.Errorf("%w: %w", validator.ErrInvalidParam, err),
			}
		}
	}

	tx := l.db.WithContext(ctx).
		Table(q.Table).
		Where(clause.Eq{Column: clause.Column{Name: q.Column}, Value: q.Value})
	if q.ExceptColumn != "" {
		tx = tx.Where(clause.Neq{Column: clause.Column{Name: q.ExceptColumn}, Value: q.ExceptValue})
	}
	if q.IDColumn != "" {
		tx = tx.Where(clause.Neq{Column: clause.Column{Name: q.IDColumn}, Value: q.IDValue})
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, errors.Join(ErrFailedToCountRecords, err)
	}
	return count, nil
}
