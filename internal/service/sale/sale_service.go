package sale

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vendas-ahora/api-vendas/internal/apierror"
	"github.com/vendas-ahora/api-vendas/internal/dto"
	"github.com/vendas-ahora/api-vendas/internal/models"
	"github.com/vendas-ahora/api-vendas/internal/service/eventservice"
)

type SaleService interface {
	Create(ctx context.Context, in dto.CreateSaleDto) (dto.SaleDto, apierror.ErrorResponse)
}

type saleService struct {
	db       *gorm.DB
	validate *validator.Validate
	events   eventservice.SalePublisher
}

// events may be nil; publishing is then skipped.
func NewSaleService(db *gorm.DB, validate *validator.Validate, events eventservice.SalePublisher) SaleService {
	return &saleService{db: db, validate: validate, events: events}
}

func (s *saleService) Create(ctx context.Context, in dto.CreateSaleDto) (dto.SaleDto, apierror.ErrorResponse) {
	if err := s.validate.Struct(in); err != nil {
		if ve := apierror.FromValidationError(err); ve != nil {
			return dto.SaleDto{}, ve
		}
		log.Printf("validating sale: %v", err)
		return dto.SaleDto{}, apierror.InternalServerError
	}

	var client models.Client
	err := s.db.WithContext(ctx).Select("id").First(&client, "id = ?", in.ClientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SaleDto{}, apierror.ClientNotFoundError
	}
	if err != nil {
		log.Printf("fetching client %d: %v", in.ClientID, err)
		return dto.SaleDto{}, apierror.InternalServerError
	}

	var product models.Product
	err = s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		First(&product, "id = ?", in.ProductID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SaleDto{}, apierror.ProductNotFoundError
	}
	if err != nil {
		log.Printf("fetching product %d: %v", in.ProductID, err)
		return dto.SaleDto{}, apierror.InternalServerError
	}

	// unit_price is a snapshot of the product's price right now; later
	// price changes must not touch existing sales.
	unitPrice := product.Price
	totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))

	sale := models.Sale{
		ClientID:   in.ClientID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		UnitPrice:  unitPrice,
		TotalPrice: totalPrice,
		SaleDate:   time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&sale).Error; err != nil {
		log.Printf("creating sale: %v", err)
		return dto.SaleDto{}, apierror.InternalServerError
	}

	s.publish(ctx, sale)

	return dto.SaleDto{
		ID:         sale.ID,
		ClientID:   sale.ClientID,
		ProductID:  sale.ProductID,
		Quantity:   sale.Quantity,
		UnitPrice:  sale.UnitPrice,
		TotalPrice: sale.TotalPrice,
		SaleDate:   sale.SaleDate,
	}, nil
}

// The sale is already committed; a publish failure is logged, never
// surfaced to the caller.
func (s *saleService) publish(ctx context.Context, sale models.Sale) {
	if s.events == nil {
		return
	}
	event := eventservice.SaleRegisteredEvent{
		SaleID:     sale.ID,
		ClientID:   sale.ClientID,
		ProductID:  sale.ProductID,
		Quantity:   sale.Quantity,
		UnitPrice:  sale.UnitPrice.String(),
		TotalPrice: sale.TotalPrice.String(),
		SaleDate:   sale.SaleDate,
	}
	if err := s.events.PublishSaleRegistered(ctx, event); err != nil {
		log.Printf("publishing sale event %d: %v", sale.ID, err)
	}
}
