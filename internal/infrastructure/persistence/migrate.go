package persistence

import (
	"gorm.io/gorm"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/channel"
	"github.com/salesbridge/backend/internal/domain/mapping"
	"github.com/salesbridge/backend/internal/domain/resolution"
)

// AutoMigrate creates or updates the schema for all persisted models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Product{},
		&catalog.MasterBoxLink{},
		&mapping.Rule{},
		&channel.OrderLine{},
		&resolution.SalesFact{},
		&RefreshPointer{},
	)
}
