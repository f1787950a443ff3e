package models

type CatalogBanner struct {
	ID       string  `gorm:"column:id;primaryKey"`
	Image    string  `gorm:"column:image;not null"`
	Title    *string `gorm:"column:title"`
	Subtitle *string `gorm:"column:subtitle"`
	Position int     `gorm:"column:position;not null;default:0"`
}

func (CatalogBanner) TableName() string { return "catalog_banners" }
