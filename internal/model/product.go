package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LowStockThreshold is the stock count below which a product is considered
// low stock and eligible for automatic replenishment.
const LowStockThreshold = 10

// ReplenishAmount is the amount added to a low-stock product's stock by the
// replenishment job.
const ReplenishAmount = 10
