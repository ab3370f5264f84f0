package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateSaleDto struct {
	ClientID  uint `json:"client_id" validate:"required"`
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type SaleDto struct {
	ID         uint            `json:"id"`
	ClientID   uint            `json:"client_id"`
	ProductID  uint            `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	SaleDate   time.Time       `json:"sale_date"`
}
