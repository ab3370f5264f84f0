package sale

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vendas-ahora/api-vendas/internal/dto"
	"github.com/vendas-ahora/api-vendas/internal/models"
	"github.com/vendas-ahora/api-vendas/internal/service/eventservice"
	"github.com/vendas-ahora/api-vendas/internal/testutil"
	"github.com/vendas-ahora/api-vendas/internal/validators"
)

type capturingPublisher struct {
	events []eventservice.SaleRegisteredEvent
}

func (c *capturingPublisher) PublishSaleRegistered(_ context.Context, e eventservice.SaleRegisteredEvent) error {
	c.events = append(c.events, e)
	return nil
}

func setup(t *testing.T) (SaleService, *gorm.DB, *capturingPublisher) {
	t.Helper()
	db := testutil.NewTestDB(t)
	pub := &capturingPublisher{}
	return NewSaleService(db, validators.New(), pub), db, pub
}

func seed(t *testing.T, db *gorm.DB, price string) (models.Client, models.Product) {
	t.Helper()
	client := models.Client{Name: "Ana", CPF: "123.456.789-00"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seeding client: %v", err)
	}
	product := models.Product{Name: "Caneca", SKU: "CAN-1", Price: decimal.RequireFromString(price)}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seeding product: %v", err)
	}
	return client, product
}

func TestSale_Create_ComputesTotal(t *testing.T) {
	ctx := context.Background()
	svc, db, pub := setup(t)
	client, product := seed(t, db, "10.00")

	sale, apiErr := svc.Create(ctx, dto.CreateSaleDto{
		ClientID:  client.ID,
		ProductID: product.ID,
		Quantity:  3,
	})
	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}

	if !sale.UnitPrice.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("unit_price must snapshot the product price, got %s", sale.UnitPrice)
	}
	if !sale.TotalPrice.Equal(decimal.RequireFromString("30.00")) {
		t.Fatalf("total_price must be unit_price * quantity, got %s", sale.TotalPrice)
	}
	if sale.SaleDate.IsZero() {
		t.Fatalf("sale_date must default to now")
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(pub.events))
	}
	if pub.events[0].TotalPrice != "30" && pub.events[0].TotalPrice != "30.00" {
		t.Fatalf("event total mismatch: %s", pub.events[0].TotalPrice)
	}
}

func TestSale_SnapshotSurvivesPriceChange(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := setup(t)
	client, product := seed(t, db, "10.00")

	created, apiErr := svc.Create(ctx, dto.CreateSaleDto{
		ClientID:  client.ID,
		ProductID: product.ID,
		Quantity:  2,
	})
	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}

	db.Model(&product).Update("price", decimal.RequireFromString("99.99"))

	var stored models.Sale
	if err := db.First(&stored, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("fetching sale: %v", err)
	}
	if !stored.UnitPrice.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("snapshot must not track later price changes, got %s", stored.UnitPrice)
	}
	if !stored.TotalPrice.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("total must stay fixed, got %s", stored.TotalPrice)
	}
}

func TestSale_Create_InvalidQuantity(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := setup(t)
	client, product := seed(t, db, "10.00")

	for _, q := range []int{0, -2} {
		_, apiErr := svc.Create(ctx, dto.CreateSaleDto{
			ClientID:  client.ID,
			ProductID: product.ID,
			Quantity:  q,
		})
		if apiErr == nil || apiErr.Code() != http.StatusBadRequest {
			t.Fatalf("expected 400 for quantity %d, got %+v", q, apiErr)
		}
	}
}

func TestSale_Create_MissingReferences(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := setup(t)
	client, product := seed(t, db, "10.00")

	_, apiErr := svc.Create(ctx, dto.CreateSaleDto{ClientID: 999, ProductID: product.ID, Quantity: 1})
	if apiErr == nil || apiErr.Code() != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown client, got %+v", apiErr)
	}

	_, apiErr = svc.Create(ctx, dto.CreateSaleDto{ClientID: client.ID, ProductID: 999, Quantity: 1})
	if apiErr == nil || apiErr.Code() != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %+v", apiErr)
	}
}

func TestSale_Create_RejectsSoftDeletedProduct(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := setup(t)
	client, product := seed(t, db, "10.00")

	db.Model(&product).Update("is_deleted", true)

	_, apiErr := svc.Create(ctx, dto.CreateSaleDto{ClientID: client.ID, ProductID: product.ID, Quantity: 1})
	if apiErr == nil || apiErr.Code() != http.StatusNotFound {
		t.Fatalf("expected 404 for soft-deleted product, got %+v", apiErr)
	}
}

func TestSale_Create_NilPublisher(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := NewSaleService(db, validators.New(), nil)
	client, product := seed(t, db, "5.50")

	if _, apiErr := svc.Create(ctx, dto.CreateSaleDto{ClientID: client.ID, ProductID: product.ID, Quantity: 1}); apiErr != nil {
		t.Fatalf("nil publisher must be fine: %+v", apiErr)
	}
}
