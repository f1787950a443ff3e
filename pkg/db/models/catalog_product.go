package models

import (
	"time"

	"github.com/shopspring/decimal"

	dbtypes "github.com/angelmondragon/shopstate/pkg/db/types"
)

// CatalogProduct is a row of catalog_products. Position keeps the listing order stable.
type CatalogProduct struct {
	ID          string             `gorm:"column:id;primaryKey"`
	Name        string             `gorm:"column:name;not null"`
	Price       decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null"`
	Images      dbtypes.StringList `gorm:"column:images;type:text;not null"`
	Description string             `gorm:"column:description;not null;default:''"`
	Tags        dbtypes.StringList `gorm:"column:tags;type:text;not null"`
	Category    string             `gorm:"column:category;not null;default:''"`
	Position    int                `gorm:"column:position;not null;default:0"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (CatalogProduct) TableName() string { return "catalog_products" }
