package postgres

import (
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/sessionrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the orders and packing_sessions tables with
// AutoMigrate. The partial unique index on active sessions comes from the
// uniqueIndex tag of sessionrepo.PackingSessionDTO.OrderID.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &sessionrepo.PackingSessionDTO{})
}
