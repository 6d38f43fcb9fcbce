package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = gorm.ErrRecordNotFound

// IsNotFound reports whether err comes from a lookup that matched nothing.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// conn returns tx when the caller runs inside a transaction and db otherwise.
func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
