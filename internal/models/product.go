package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	SKU             string          `gorm:"column:sku;type:varchar(100);not null;index" json:"sku"`
	Description     string          `gorm:"type:text" json:"description"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	QuantityInStock int             `gorm:"column:quantity_in_stock;not null;default:0" json:"quantity_in_stock"`
	Category        string          `gorm:"type:varchar(255)" json:"category"`
	ImageURL        *string         `gorm:"column:image_url;type:varchar(255)" json:"image_url"`
	IsDeleted       bool            `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
