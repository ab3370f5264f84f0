package dto

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// UploadFile is the multipart image part handed down to the service.
// Type and size are checked before the storage collaborator is called.
type UploadFile struct {
	Reader      io.ReadSeeker
	Filename    string
	Size        int64
	ContentType string
}

type CreateProductDto struct {
	Name            string          `json:"name" validate:"required,max=255"`
	SKU             string          `json:"sku" validate:"required,max=100"`
	Description     string          `json:"description" validate:"omitempty"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock *int            `json:"quantity_in_stock"`
	Category        string          `json:"category" validate:"omitempty,max=255"`
}

type UpdateProductDto struct {
	Name            *string          `json:"name" validate:"omitempty,max=255"`
	SKU             *string          `json:"sku" validate:"omitempty,max=100"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	QuantityInStock *int             `json:"quantity_in_stock"`
	Category        *string          `json:"category" validate:"omitempty,max=255"`
}

func (d UpdateProductDto) Empty() bool {
	return d.Name == nil && d.SKU == nil && d.Description == nil &&
		d.Price == nil && d.QuantityInStock == nil && d.Category == nil
}

type ProductListDto struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	SKU             string          `json:"sku"`
	QuantityInStock int             `json:"quantity_in_stock"`
}

type ProductDto struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int             `json:"quantity_in_stock"`
	Category        string          `json:"category"`
	ImageURL        *string         `json:"image_url"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
