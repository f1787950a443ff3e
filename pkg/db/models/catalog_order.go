package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogOrder records a placed order. Lines holds the JSON-encoded order lines.
type CatalogOrder struct {
	ID              string          `gorm:"column:id;primaryKey"`
	PaymentMethodID string          `gorm:"column:payment_method_id;not null"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	Lines           string          `gorm:"column:lines;type:text;not null"`
	PlacedAt        time.Time       `gorm:"column:placed_at;not null"`
}

func (CatalogOrder) TableName() string { return "catalog_orders" }
