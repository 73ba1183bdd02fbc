package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/salesbridge/backend/internal/domain/shared"
)

// applyFilter applies ordering and pagination from a shared.Filter
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy != "" {
		direction := "ASC"
		if filter.Desc {
			direction = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", filter.OrderBy, direction))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	return query
}
