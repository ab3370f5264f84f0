package product

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/vendas-ahora/api-vendas/internal/apierror"
	"github.com/vendas-ahora/api-vendas/internal/dto"
	"github.com/vendas-ahora/api-vendas/internal/models"
	"github.com/vendas-ahora/api-vendas/internal/service/uploads"
)

const uploadPrefix = "uploads"

type ProductService interface {
	List(ctx context.Context, order string) ([]dto.ProductListDto, apierror.ErrorResponse)
	Get(ctx context.Context, id uint) (dto.ProductDto, apierror.ErrorResponse)
	Create(ctx context.Context, in dto.CreateProductDto, image *dto.UploadFile) (dto.ProductDto, apierror.ErrorResponse)
	Update(ctx context.Context, id uint, in dto.UpdateProductDto, image *dto.UploadFile) (dto.ProductDto, apierror.ErrorResponse)
	Delete(ctx context.Context, id uint) apierror.ErrorResponse
}

type productService struct {
	db       *gorm.DB
	validate *validator.Validate
	uploads  uploads.Service
}

func NewProductService(db *gorm.DB, validate *validator.Validate, uploads uploads.Service) ProductService {
	return &productService{db: db, validate: validate, uploads: uploads}
}

func (s *productService) List(ctx context.Context, order string) ([]dto.ProductListDto, apierror.ErrorResponse) {
	orderBy := "name"
	if order == "price" {
		orderBy = "price"
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order(orderBy).
		Find(&products).Error; err != nil {
		log.Printf("listing products: %v", err)
		return nil, apierror.InternalServerError
	}

	items := make([]dto.ProductListDto, 0, len(products))
	for _, p := range products {
		items = append(items, dto.ProductListDto{
			ID:              p.ID,
			Name:            p.Name,
			Price:           p.Price,
			SKU:             p.SKU,
			QuantityInStock: p.QuantityInStock,
		})
	}
	return items, nil
}

func (s *productService) Get(ctx context.Context, id uint) (dto.ProductDto, apierror.ErrorResponse) {
	product, apiErr := s.find(ctx, id)
	if apiErr != nil {
		return dto.ProductDto{}, apiErr
	}
	return toDto(product), nil
}

func (s *productService) Create(ctx context.Context, in dto.CreateProductDto, image *dto.UploadFile) (dto.ProductDto, apierror.ErrorResponse) {
	if err := s.validate.Struct(in); err != nil {
		if ve := apierror.FromValidationError(err); ve != nil {
			return dto.ProductDto{}, ve
		}
		log.Printf("validating product: %v", err)
		return dto.ProductDto{}, apierror.InternalServerError
	}

	if in.Price.IsNegative() {
		return dto.ProductDto{}, apierror.NewStructured().Add("price", "Price must be zero or positive")
	}
	quantity := 0
	if in.QuantityInStock != nil {
		quantity = *in.QuantityInStock
	}
	if quantity < 0 {
		return dto.ProductDto{}, apierror.NewStructured().Add("quantity_in_stock", "Stock must be zero or positive")
	}

	if apiErr := s.checkSKU(ctx, in.SKU, 0); apiErr != nil {
		return dto.ProductDto{}, apiErr
	}

	if image != nil {
		if apiErr := checkImage(*image); apiErr != nil {
			return dto.ProductDto{}, apiErr
		}
	}

	product := models.Product{
		Name:            in.Name,
		SKU:             in.SKU,
		Description:     in.Description,
		Price:           in.Price,
		QuantityInStock: quantity,
		Category:        in.Category,
	}

	// The row lands before the upload: a failed upload rolls it back,
	// and a failed insert never strands an object in the bucket.
	var uploadErr apierror.ErrorResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		if image == nil {
			return nil
		}
		url, err := s.uploads.Upload(ctx, *image, uploadPrefix)
		if err != nil {
			uploadErr = apierror.NewSimple(http.StatusBadRequest, "Image upload failed: %v", err)
			return err
		}
		product.ImageURL = &url
		return tx.Model(&product).Update("image_url", url).Error
	})
	if uploadErr != nil {
		return dto.ProductDto{}, uploadErr
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return dto.ProductDto{}, apierror.NewStructured().Add("sku", "SKU is already in use")
	}
	if err != nil {
		log.Printf("creating product: %v", err)
		return dto.ProductDto{}, apierror.InternalServerError
	}
	return toDto(product), nil
}

func (s *productService) Update(ctx context.Context, id uint, in dto.UpdateProductDto, image *dto.UploadFile) (dto.ProductDto, apierror.ErrorResponse) {
	if in.Empty() && image == nil {
		return dto.ProductDto{}, apierror.NewStructured().Add("body", "At least one field is required")
	}
	if err := s.validate.Struct(in); err != nil {
		if ve := apierror.FromValidationError(err); ve != nil {
			return dto.ProductDto{}, ve
		}
		log.Printf("validating product update: %v", err)
		return dto.ProductDto{}, apierror.InternalServerError
	}

	if in.Price != nil && in.Price.IsNegative() {
		return dto.ProductDto{}, apierror.NewStructured().Add("price", "Price must be zero or positive")
	}
	if in.QuantityInStock != nil && *in.QuantityInStock < 0 {
		return dto.ProductDto{}, apierror.NewStructured().Add("quantity_in_stock", "Stock must be zero or positive")
	}

	product, apiErr := s.find(ctx, id)
	if apiErr != nil {
		return dto.ProductDto{}, apiErr
	}

	if in.SKU != nil {
		if apiErr := s.checkSKU(ctx, *in.SKU, id); apiErr != nil {
			return dto.ProductDto{}, apiErr
		}
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.QuantityInStock != nil {
		product.QuantityInStock = *in.QuantityInStock
	}
	if in.Category != nil {
		product.Category = *in.Category
	}

	if image != nil {
		if apiErr := checkImage(*image); apiErr != nil {
			return dto.ProductDto{}, apiErr
		}
	}

	var uploadErr apierror.ErrorResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&product).Error; err != nil {
			return err
		}
		if image == nil {
			return nil
		}
		url, err := s.uploads.Upload(ctx, *image, uploadPrefix)
		if err != nil {
			uploadErr = apierror.NewSimple(http.StatusBadRequest, "Image upload failed: %v", err)
			return err
		}
		product.ImageURL = &url
		return tx.Model(&product).Update("image_url", url).Error
	})
	if uploadErr != nil {
		return dto.ProductDto{}, uploadErr
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return dto.ProductDto{}, apierror.NewStructured().Add("sku", "SKU is already in use")
	}
	if err != nil {
		log.Printf("updating product %d: %v", id, err)
		return dto.ProductDto{}, apierror.InternalServerError
	}
	return toDto(product), nil
}

// Delete flips is_deleted; the row stays so historical sales keep a
// valid reference.
func (s *productService) Delete(ctx context.Context, id uint) apierror.ErrorResponse {
	product, apiErr := s.find(ctx, id)
	if apiErr != nil {
		return apiErr
	}

	if err := s.db.WithContext(ctx).
		Model(&product).
		Update("is_deleted", true).Error; err != nil {
		log.Printf("soft-deleting product %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *productService) find(ctx context.Context, id uint) (models.Product, apierror.ErrorResponse) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, apierror.ProductNotFoundError
	}
	if err != nil {
		log.Printf("fetching product %d: %v", id, err)
		return models.Product{}, apierror.InternalServerError
	}
	return product, nil
}

// SKU must be unique among non-deleted products; selfID carves the
// product itself out on update.
func (s *productService) checkSKU(ctx context.Context, sku string, selfID uint) apierror.ErrorResponse {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("sku = ? AND is_deleted = ?", sku, false)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&count).Error; err != nil {
		log.Printf("checking sku uniqueness: %v", err)
		return apierror.InternalServerError
	}
	if count > 0 {
		return apierror.NewStructured().Add("sku", "SKU is already in use")
	}
	return nil
}

func checkImage(image dto.UploadFile) apierror.ErrorResponse {
	if !strings.HasPrefix(image.ContentType, "image/") {
		return apierror.NewStructured().Add("image", "Only image files are accepted")
	}
	if image.Size > uploads.MaxImageBytes {
		return apierror.NewStructured().Add("image", "Image must be 2MB or smaller")
	}
	return nil
}

func toDto(p models.Product) dto.ProductDto {
	return dto.ProductDto{
		ID:              p.ID,
		Name:            p.Name,
		SKU:             p.SKU,
		Description:     p.Description,
		Price:           p.Price,
		QuantityInStock: p.QuantityInStock,
		Category:        p.Category,
		ImageURL:        p.ImageURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
