package client

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/vendas-ahora/api-vendas/internal/apierror"
	"github.com/vendas-ahora/api-vendas/internal/dto"
	"github.com/vendas-ahora/api-vendas/internal/models"
)

type ClientService interface {
	List(ctx context.Context) ([]dto.ClientListDto, apierror.ErrorResponse)
	Get(ctx context.Context, id uint, filter dto.SalesFilter) (dto.ClientDetailDto, apierror.ErrorResponse)
	Create(ctx context.Context, in dto.CreateClientDto) (dto.ClientDetailDto, apierror.ErrorResponse)
	Update(ctx context.Context, id uint, in dto.UpdateClientDto) (dto.ClientDetailDto, apierror.ErrorResponse)
	Delete(ctx context.Context, id uint) apierror.ErrorResponse
}

type clientService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewClientService(db *gorm.DB, validate *validator.Validate) ClientService {
	return &clientService{db: db, validate: validate}
}

func (s *clientService) List(ctx context.Context) ([]dto.ClientListDto, apierror.ErrorResponse) {
	var clients []models.Client
	if err := s.db.WithContext(ctx).
		Select("id", "name", "cpf").
		Order("id").
		Find(&clients).Error; err != nil {
		log.Printf("listing clients: %v", err)
		return nil, apierror.InternalServerError
	}

	items := make([]dto.ClientListDto, 0, len(clients))
	for _, c := range clients {
		items = append(items, dto.ClientListDto{ID: c.ID, Name: c.Name, CPF: c.CPF})
	}
	return items, nil
}

func (s *clientService) Get(ctx context.Context, id uint, filter dto.SalesFilter) (dto.ClientDetailDto, apierror.ErrorResponse) {
	var client models.Client
	err := s.db.WithContext(ctx).
		Preload("Address").
		Preload("Phone").
		First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ClientDetailDto{}, apierror.ClientNotFoundError
	}
	if err != nil {
		log.Printf("fetching client %d: %v", id, err)
		return dto.ClientDetailDto{}, apierror.InternalServerError
	}

	salesQuery := s.db.WithContext(ctx).
		Where("client_id = ?", id).
		Order("sale_date DESC")

	// The filter only applies with both month and year present; a
	// half-open range keeps the query portable across databases.
	if filter.Active() {
		start := time.Date(*filter.Year, time.Month(*filter.Month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		salesQuery = salesQuery.Where("sale_date >= ? AND sale_date < ?", start, end)
	}

	var sales []models.Sale
	if err := salesQuery.Find(&sales).Error; err != nil {
		log.Printf("fetching sales for client %d: %v", id, err)
		return dto.ClientDetailDto{}, apierror.InternalServerError
	}
	client.Sales = sales

	return toDetailDto(client), nil
}

func (s *clientService) Create(ctx context.Context, in dto.CreateClientDto) (dto.ClientDetailDto, apierror.ErrorResponse) {
	if err := s.validate.Struct(in); err != nil {
		if ve := apierror.FromValidationError(err); ve != nil {
			return dto.ClientDetailDto{}, ve
		}
		log.Printf("validating client: %v", err)
		return dto.ClientDetailDto{}, apierror.InternalServerError
	}

	client := models.Client{Name: in.Name, CPF: in.CPF}

	// Client, address and phone land together or not at all.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&client).Error; err != nil {
			return err
		}
		address := models.Address{
			ClientID: client.ID,
			Street:   in.Address.Street,
			Number:   in.Address.Number,
			City:     in.Address.City,
			State:    in.Address.State,
			ZipCode:  in.Address.ZipCode,
		}
		if err := tx.Create(&address).Error; err != nil {
			return err
		}
		phone := models.Phone{
			ClientID: client.ID,
			Number:   in.Phone.Number,
			AreaCode: in.Phone.AreaCode,
		}
		if err := tx.Create(&phone).Error; err != nil {
			return err
		}
		client.Address = &address
		client.Phone = &phone
		return nil
	})
	// The unique index is the source of truth for CPF collisions; a
	// pre-select would race against concurrent inserts.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return dto.ClientDetailDto{}, apierror.NewStructured().Add("cpf", "CPF is already in use")
	}
	if err != nil {
		log.Printf("creating client: %v", err)
		return dto.ClientDetailDto{}, apierror.InternalServerError
	}

	return toDetailDto(client), nil
}

func (s *clientService) Update(ctx context.Context, id uint, in dto.UpdateClientDto) (dto.ClientDetailDto, apierror.ErrorResponse) {
	if in.Empty() {
		return dto.ClientDetailDto{}, apierror.NewStructured().Add("body", "At least one field is required")
	}
	if err := s.validate.Struct(in); err != nil {
		if ve := apierror.FromValidationError(err); ve != nil {
			return dto.ClientDetailDto{}, ve
		}
		log.Printf("validating client update: %v", err)
		return dto.ClientDetailDto{}, apierror.InternalServerError
	}

	var client models.Client
	err := s.db.WithContext(ctx).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ClientDetailDto{}, apierror.ClientNotFoundError
	}
	if err != nil {
		log.Printf("fetching client %d: %v", id, err)
		return dto.ClientDetailDto{}, apierror.InternalServerError
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.Name != nil {
			client.Name = *in.Name
		}
		if in.CPF != nil {
			client.CPF = *in.CPF
		}
		if err := tx.Save(&client).Error; err != nil {
			return err
		}
		if in.Address != nil {
			if err := upsertAddress(tx, client.ID, *in.Address); err != nil {
				return err
			}
		}
		if in.Phone != nil {
			if err := upsertPhone(tx, client.ID, *in.Phone); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return dto.ClientDetailDto{}, apierror.NewStructured().Add("cpf", "CPF is already in use")
	}
	if err != nil {
		log.Printf("updating client %d: %v", id, err)
		return dto.ClientDetailDto{}, apierror.InternalServerError
	}

	return s.Get(ctx, id, dto.SalesFilter{})
}

func (s *clientService) Delete(ctx context.Context, id uint) apierror.ErrorResponse {
	var client models.Client
	err := s.db.WithContext(ctx).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.ClientNotFoundError
	}
	if err != nil {
		log.Printf("fetching client %d: %v", id, err)
		return apierror.InternalServerError
	}

	// Sales first, then address and phone, then the client row, so the
	// foreign keys stay satisfied at every step.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.Sale{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Address{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Phone{}).Error; err != nil {
			return err
		}
		return tx.Delete(&client).Error
	})
	if err != nil {
		log.Printf("deleting client %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

// The related row is created on first touch and merged afterwards; the
// unique index on client_id keeps it one per client.
func upsertAddress(tx *gorm.DB, clientID uint, in dto.UpdateAddressDto) error {
	var address models.Address
	err := tx.Where("client_id = ?", clientID).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		address = models.Address{ClientID: clientID}
	} else if err != nil {
		return err
	}

	if in.Street != nil {
		address.Street = *in.Street
	}
	if in.Number != nil {
		address.Number = *in.Number
	}
	if in.City != nil {
		address.City = *in.City
	}
	if in.State != nil {
		address.State = *in.State
	}
	if in.ZipCode != nil {
		address.ZipCode = *in.ZipCode
	}
	return tx.Save(&address).Error
}

func upsertPhone(tx *gorm.DB, clientID uint, in dto.UpdatePhoneDto) error {
	var phone models.Phone
	err := tx.Where("client_id = ?", clientID).First(&phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		phone = models.Phone{ClientID: clientID}
	} else if err != nil {
		return err
	}

	if in.Number != nil {
		phone.Number = *in.Number
	}
	if in.AreaCode != nil {
		phone.AreaCode = *in.AreaCode
	}
	return tx.Save(&phone).Error
}

func toDetailDto(client models.Client) dto.ClientDetailDto {
	out := dto.ClientDetailDto{
		ID:        client.ID,
		Name:      client.Name,
		CPF:       client.CPF,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
		Sales:     make([]dto.SaleDto, 0, len(client.Sales)),
	}
	if client.Address != nil {
		out.Address = &dto.AddressDto{
			Street:  client.Address.Street,
			Number:  client.Address.Number,
			City:    client.Address.City,
			State:   client.Address.State,
			ZipCode: client.Address.ZipCode,
		}
	}
	if client.Phone != nil {
		out.Phone = &dto.PhoneDto{
			Number:   client.Phone.Number,
			AreaCode: client.Phone.AreaCode,
		}
	}
	for _, sale := range client.Sales {
		out.Sales = append(out.Sales, dto.SaleDto{
			ID:         sale.ID,
			ClientID:   sale.ClientID,
			ProductID:  sale.ProductID,
			Quantity:   sale.Quantity,
			UnitPrice:  sale.UnitPrice,
			TotalPrice: sale.TotalPrice,
			SaleDate:   sale.SaleDate,
		})
	}
	return out
}
