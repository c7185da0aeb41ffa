package service

import (
	"context"
	"fmt"
	"time"

	"pos-service/internal/models"
	"pos-service/internal/store"
	"pos-service/internal/util"

	"go.uber.org/zap"
)

// ProductStore is the data access surface the product service needs.
// *store.Store satisfies it.
type ProductStore interface {
	ListProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	InsertProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id string, upd *models.ProductUpdate) (*models.Product, error)
	SoftDeleteProduct(ctx context.Context, id string) error
}

// ProductService handles catalog business logic
type ProductService struct {
	store  ProductStore
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store ProductStore) *ProductService {
	return &ProductService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// List returns products matching the filter in store-native order.
// A Limit of zero or less means no limit; the HTTP layer supplies the
// default page size.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.List")
	defer span.End()

	return s.store.ListProducts(ctx, filter)
}

// Get retrieves a single product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.Get")
	defer span.End()

	return s.store.GetProduct(ctx, id)
}

// Create validates the payload, applies defaults and persists the product.
func (s *ProductService) Create(ctx context.Context, req *models.ProductCreate) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.Create")
	defer span.End()

	if err := validateProduct(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Image:       req.Image,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Category == "" {
		product.Category = models.DefaultCategory
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.store.InsertProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created",
		zap.String("product_id", product.ID.Hex()),
		zap.String("name", product.Name))

	return product, nil
}

// Update applies a partial update. Only fields present in the payload
// change; updated_at is always refreshed.
func (s *ProductService) Update(ctx context.Context, id string, upd *models.ProductUpdate) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.Update")
	defer span.End()

	if upd.IsEmpty() {
		return nil, store.ErrEmptyUpdate
	}

	product, err := s.store.UpdateProduct(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", id))
	return product, nil
}

// Delete soft-deletes a product. The document remains retrievable by id
// with is_active false.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	ctx, span := util.StartSpan(ctx, "ProductService.Delete")
	defer span.End()

	if err := s.store.SoftDeleteProduct(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Product soft-deleted", zap.String("product_id", id))
	return nil
}

func validateProduct(req *models.ProductCreate) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name must not be empty", store.ErrValidation)
	}
	if req.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", store.ErrValidation)
	}
	if req.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", store.ErrValidation)
	}
	return nil
}
