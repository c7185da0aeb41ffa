package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pos-service/internal/models"
	"pos-service/internal/store"
	"pos-service/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateProductAppliesDefaults(t *testing.T) {
	svc := NewProductService(storetest.New())

	product, err := svc.Create(context.Background(), &models.ProductCreate{
		Name:  "Widget",
		Price: 9.99,
		Stock: 5,
	})
	require.NoError(t, err)

	assert.False(t, product.ID.IsZero())
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, models.DefaultCategory, product.Category)
	assert.True(t, product.IsActive)
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(storetest.New())

	tests := []struct {
		name string
		req  *models.ProductCreate
	}{
		{"empty name", &models.ProductCreate{Name: "", Price: 1, Stock: 1}},
		{"zero price", &models.ProductCreate{Name: "x", Price: 0, Stock: 1}},
		{"negative price", &models.ProductCreate{Name: "x", Price: -1, Stock: 1}},
		{"negative stock", &models.ProductCreate{Name: "x", Price: 1, Stock: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, store.ErrValidation)
		})
	}
}

func TestCreateProductExplicitInactive(t *testing.T) {
	svc := NewProductService(storetest.New())

	inactive := false
	product, err := svc.Create(context.Background(), &models.ProductCreate{
		Name:     "Discontinued",
		Price:    1,
		Stock:    0,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, product.IsActive)
}

func TestGetProductErrors(t *testing.T) {
	svc := NewProductService(storetest.New())

	_, err := svc.Get(context.Background(), "bogus")
	assert.ErrorIs(t, err, store.ErrInvalidID)

	_, err = svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateProductEmptyPayload(t *testing.T) {
	fs := storetest.New()
	id := fs.AddProduct(&models.Product{Name: "Widget", Price: 1, IsActive: true})
	svc := NewProductService(fs)

	_, err := svc.Update(context.Background(), id, &models.ProductUpdate{})
	assert.ErrorIs(t, err, store.ErrEmptyUpdate)
}

func TestUpdateProductSingleField(t *testing.T) {
	fs := storetest.New()
	created := time.Now().UTC().Add(-time.Minute)
	id := fs.AddProduct(&models.Product{
		Name:      "Widget",
		Price:     9.99,
		Stock:     5,
		Category:  "Tools",
		IsActive:  true,
		CreatedAt: created,
		UpdatedAt: created,
	})
	svc := NewProductService(fs)

	name := "Gadget"
	product, err := svc.Update(context.Background(), id, &models.ProductUpdate{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Gadget", product.Name)
	assert.Equal(t, 9.99, product.Price)
	assert.Equal(t, 5, product.Stock)
	assert.Equal(t, "Tools", product.Category)
	assert.True(t, product.UpdatedAt.After(created))
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := NewProductService(storetest.New())

	name := "x"
	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), &models.ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSoftDeleteKeepsProductRetrievable(t *testing.T) {
	fs := storetest.New()
	id := fs.AddProduct(&models.Product{Name: "Widget", Price: 1, IsActive: true})
	svc := NewProductService(fs)

	require.NoError(t, svc.Delete(context.Background(), id))

	product, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, product.IsActive)

	// Absent from a default active-only listing.
	listed, err := svc.List(context.Background(), models.ProductFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, listed)

	// Present when inactive products are requested.
	listed, err = svc.List(context.Background(), models.ProductFilter{ActiveOnly: false})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestListProductsCategoryFilter(t *testing.T) {
	fs := storetest.New()
	fs.AddProduct(&models.Product{Name: "Latte", Category: "Drinks", IsActive: true})
	fs.AddProduct(&models.Product{Name: "Bagel", Category: "Food", IsActive: true})
	svc := NewProductService(fs)

	listed, err := svc.List(context.Background(), models.ProductFilter{Category: "Drinks", ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Latte", listed[0].Name)
}

func TestListProductsZeroLimitMeansNoLimit(t *testing.T) {
	fs := storetest.New()
	for i := 0; i < 3; i++ {
		fs.AddProduct(&models.Product{Name: fmt.Sprintf("Item %d", i), IsActive: true})
	}
	svc := NewProductService(fs)

	listed, err := svc.List(context.Background(), models.ProductFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, listed, 3)
	assert.Equal(t, int64(0), fs.LastProductLimit)

	listed, err = svc.List(context.Background(), models.ProductFilter{ActiveOnly: true, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, listed, 2)
	assert.Equal(t, int64(2), fs.LastProductLimit)
}
