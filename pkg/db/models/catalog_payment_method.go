package models

// CatalogPaymentMethod is a selectable checkout payment option.
type CatalogPaymentMethod struct {
	ID       string  `gorm:"column:id;primaryKey"`
	Name     string  `gorm:"column:name;not null"`
	Icon     *string `gorm:"column:icon"`
	Position int     `gorm:"column:position;not null;default:0"`
}

func (CatalogPaymentMethod) TableName() string { return "catalog_payment_methods" }
