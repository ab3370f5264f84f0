package product

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vendas-ahora/api-vendas/internal/dto"
	"github.com/vendas-ahora/api-vendas/internal/models"
	"github.com/vendas-ahora/api-vendas/internal/testutil"
	"github.com/vendas-ahora/api-vendas/internal/validators"
)

type fakeUploader struct {
	calls int
	fail  bool
}

func (f *fakeUploader) Upload(_ context.Context, file dto.UploadFile, prefix string) (string, error) {
	f.calls++
	if f.fail {
		return "", errors.New("bucket unavailable")
	}
	return "https://cdn.test/" + prefix + "/" + file.Filename, nil
}

func setup(t *testing.T) (ProductService, *gorm.DB, *fakeUploader) {
	t.Helper()
	db := testutil.NewTestDB(t)
	up := &fakeUploader{}
	return NewProductService(db, validators.New(), up), db, up
}

func validCreate() dto.CreateProductDto {
	return dto.CreateProductDto{
		Name:     "Caneca",
		SKU:      "CAN-1",
		Price:    decimal.RequireFromString("25.90"),
		Category: "cozinha",
	}
}

func pngImage(size int64) *dto.UploadFile {
	return &dto.UploadFile{
		Reader:      strings.NewReader("fake-bytes"),
		Filename:    "foto.png",
		Size:        size,
		ContentType: "image/png",
	}
}

func TestProduct_Create_Valid(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	created, apiErr := svc.Create(ctx, validCreate(), nil)
	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if created.ID == 0 {
		t.Fatalf("expected id assigned")
	}
	if created.QuantityInStock != 0 {
		t.Fatalf("expected stock defaulted to 0, got %d", created.QuantityInStock)
	}
}

func TestProduct_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	in := validCreate()
	in.Name = ""
	if _, apiErr := svc.Create(ctx, in, nil); apiErr == nil || apiErr.Code() != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %+v", apiErr)
	}

	in = validCreate()
	in.SKU = ""
	if _, apiErr := svc.Create(ctx, in, nil); apiErr == nil || apiErr.Code() != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing sku, got %+v", apiErr)
	}

	in = validCreate()
	in.Price = decimal.RequireFromString("-1")
	if _, apiErr := svc.Create(ctx, in, nil); apiErr == nil || apiErr.Code() != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %+v", apiErr)
	}

	in = validCreate()
	negative := -3
	in.QuantityInStock = &negative
	if _, apiErr := svc.Create(ctx, in, nil); apiErr == nil || apiErr.Code() != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative stock, got %+v", apiErr)
	}
}

func TestProduct_Create_DuplicateSKU(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	if _, apiErr := svc.Create(ctx, validCreate(), nil); apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if _, apiErr := svc.Create(ctx, validCreate(), nil); apiErr == nil || apiErr.Code() != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate sku, got %+v", apiErr)
	}
}

func TestProduct_Create_SKUReusableAfterSoftDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	created, apiErr := svc.Create(ctx, validCreate(), nil)
	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if apiErr := svc.Delete(ctx, created.ID); apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}

	// Deleted rows no longer hold the SKU.
	if _, apiErr := svc.Create(ctx, validCreate(), nil); apiErr != nil {
		t.Fatalf("expected sku to be reusable, got %+v", apiErr)
	}
}

func TestProduct_Create_WithImage(t *testing.T) {
	ctx := context.Background()
	svc, _, up := setup(t)

	created, apiErr := svc.Create(ctx, validCreate(), pngImage(1024))
	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if up.calls != 1 {
		t.Fatalf("expected one upload call, got %d", up.calls)
	}
	if created.ImageURL == nil || !strings.Contains(*created.ImageURL, "foto.png") {
		t.Fatalf("expected image url persisted, got %+v", created.ImageURL)
	}
}

func TestProduct_Create_ImageRejected(t *testing.T) {
	ctx := context.Background()
	svc, _, up := setup(t)

	tooBig := pngImage(3 << 20)
	if _, apiErr := svc.Create(ctx, validCreate(), tooBig); apiErr == nil || apiErr.Code() != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized image, got %+v", apiErr)
	}

	notImage := pngImage(512)
	notImage.ContentType = "application/pdf"
	if _, apiErr := svc.Create(ctx, validCreate(), notImage); apiErr == nil || apiErr.Code() != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-image upload, got %+v", apiErr)
	}

	if up.calls != 0 {
		t.Fatalf("collaborator must not be called for rejected files, got %d calls", up.calls)
	}
}

func TestProduct_Create_UploadFailureIs400(t *testing.T) {
	ctx := context.Background()
	svc, db, up := setup(t)
	up.fail = true

	if _, apiErr := svc.Create(ctx, validCreate(), pngImage(512)); apiErr == nil || apiErr.Code() != http.StatusBadRequest {
		t.Fatalf("expected 400 on upload failure, got %+v", apiErr)
	}

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("product must not be persisted when the upload fails")
	}
}

func TestProduct_Create_RejectedBeforeUpload(t *testing.T) {
	ctx := context.Background()
	svc, _, up := setup(t)

	if _, apiErr := svc.Create(ctx, validCreate(), nil); apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}

	// A duplicate SKU fails before the collaborator runs, so no object
	// is left behind in the bucket.
	if _, apiErr := svc.Create(ctx, validCreate(), pngImage(512)); apiErr == nil || apiErr.Code() != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate sku, got %+v", apiErr)
	}
	if up.calls != 0 {
		t.Fatalf("expected no upload for a rejected product, got %d calls", up.calls)
	}
}

func TestProduct_Update_UploadFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	svc, db, up := setup(t)

	created, apiErr := svc.Create(ctx, validCreate(), nil)
	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}

	up.fail = true
	name := "Caneca Grande"
	if _, apiErr := svc.Update(ctx, created.ID, dto.UpdateProductDto{Name: &name}, pngImage(512)); apiErr == nil || apiErr.Code() != http.StatusBadRequest {
		t.Fatalf("expected 400 on upload failure, got %+v", apiErr)
	}

	var row models.Product
	if err := db.First(&row, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("fetching row: %v", err)
	}
	if row.Name != "Caneca" || row.ImageURL != nil {
		t.Fatalf("expected row untouched after failed upload, got name=%q image=%v", row.Name, row.ImageURL)
	}
}

func TestProduct_Update_Partial(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	created, apiErr := svc.Create(ctx, validCreate(), nil)
	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}

	if _, apiErr := svc.Update(ctx, created.ID, dto.UpdateProductDto{}, nil); apiErr == nil || apiErr.Code() != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty update, got %+v", apiErr)
	}

	price := decimal.RequireFromString("30.00")
	updated, apiErr := svc.Update(ctx, created.ID, dto.UpdateProductDto{Price: &price}, nil)
	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if !updated.Price.Equal(price) {
		t.Fatalf("price not updated: %s", updated.Price)
	}
	if updated.Name != "Caneca" || updated.SKU != "CAN-1" {
		t.Fatalf("unsupplied fields must survive: %+v", updated)
	}
}

func TestProduct_Update_SKUUniquenessExcludesSelf(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	created, apiErr := svc.Create(ctx, validCreate(), nil)
	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}

	other := validCreate()
	other.SKU = "CAN-2"
	if _, apiErr := svc.Create(ctx, other, nil); apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}

	// Re-submitting its own SKU is fine.
	same := "CAN-1"
	if _, apiErr := svc.Update(ctx, created.ID, dto.UpdateProductDto{SKU: &same}, nil); apiErr != nil {
		t.Fatalf("own sku must not collide: %+v", apiErr)
	}

	taken := "CAN-2"
	if _, apiErr := svc.Update(ctx, created.ID, dto.UpdateProductDto{SKU: &taken}, nil); apiErr == nil || apiErr.Code() != http.StatusBadRequest {
		t.Fatalf("expected 400 for taken sku, got %+v", apiErr)
	}
}

func TestProduct_SoftDelete(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := setup(t)

	created, apiErr := svc.Create(ctx, validCreate(), nil)
	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}

	if apiErr := svc.Delete(ctx, created.ID); apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}

	// Row survives with the flag flipped.
	var row models.Product
	if err := db.First(&row, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("row must survive a soft delete: %v", err)
	}
	if !row.IsDeleted {
		t.Fatalf("expected is_deleted = true")
	}

	if _, apiErr := svc.Get(ctx, created.ID); apiErr == nil || apiErr.Code() != http.StatusNotFound {
		t.Fatalf("expected 404 for soft-deleted product, got %+v", apiErr)
	}
	list, apiErr := svc.List(ctx, "")
	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if len(list) != 0 {
		t.Fatalf("soft-deleted products must not be listed, got %d", len(list))
	}

	if apiErr := svc.Delete(ctx, created.ID); apiErr == nil || apiErr.Code() != http.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %+v", apiErr)
	}
}

func TestProduct_List_Ordering(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	fixtures := []struct {
		name  string
		sku   string
		price string
	}{
		{"Caneca", "SKU-C", "30.00"},
		{"Avental", "SKU-A", "10.00"},
		{"Bandeja", "SKU-B", "20.00"},
	}
	for _, f := range fixtures {
		in := dto.CreateProductDto{Name: f.name, SKU: f.sku, Price: decimal.RequireFromString(f.price)}
		if _, apiErr := svc.Create(ctx, in, nil); apiErr != nil {
			t.Fatalf("unexpected error: %+v", apiErr)
		}
	}

	byName, apiErr := svc.List(ctx, "")
	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	for i := 1; i < len(byName); i++ {
		if byName[i-1].Name > byName[i].Name {
			t.Fatalf("default order must be by name: %+v", byName)
		}
	}

	byPrice, apiErr := svc.List(ctx, "price")
	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	for i := 1; i < len(byPrice); i++ {
		if byPrice[i-1].Price.GreaterThan(byPrice[i].Price) {
			t.Fatalf("price order must be non-decreasing: %+v", byPrice)
		}
	}
}
