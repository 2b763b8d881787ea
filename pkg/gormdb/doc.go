// Package gormdb backs the validator's unique rule with gorm.
//
//	db, err := gormdb.Open(cfg)
//	if err != nil {
//		return err
//	}
//	v, err := validator.New(validator.WithUniqueLookup(gormdb.NewLookup(db)))
//
// Applications that already hold a *gorm.DB pass it to NewLookup directly.
package gormdb
