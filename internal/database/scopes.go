package database

import (
	"gorm.io/gorm"

	"github.com/swapnilgupta14/synapse-api/internal/utils"
)

// Paginate applies the page window computed by utils.GetPaginationParams to a
// list query. Task listings chain it after their filters so the count query
// stays unwindowed.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
