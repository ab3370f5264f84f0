package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitPrice y TotalPrice son snapshots tomados al momento de la venta;
// nunca se recalculan desde el producto.
type Sale struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ClientID   uint            `gorm:"column:client_id;not null;index" json:"client_id"`
	ProductID  uint            `gorm:"column:product_id;not null;index" json:"product_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:decimal(12,2);not null" json:"total_price"`
	SaleDate   time.Time       `gorm:"column:sale_date" json:"sale_date"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Sale) TableName() string { return "sales" }
