// Package storetest provides an in-memory substitute for store.Store so
// services and handlers can be tested without a MongoDB instance. It
// mirrors the store's identifier and not-found semantics.
package storetest

import (
	"context"
	"time"

	"pos-service/internal/models"
	"pos-service/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	Products map[string]*models.Product
	Txns     []*models.Transaction

	// Arguments of the last ListTransactions call, for asserting defaults.
	LastListLimit int64
	LastListSkip  int64

	// Limit of the last ListProducts call.
	LastProductLimit int64
}

func New() *Store {
	return &Store{Products: map[string]*models.Product{}}
}

// AddProduct seeds a product directly, assigning it a fresh id.
func (f *Store) AddProduct(p *models.Product) string {
	p.ID = primitive.NewObjectID()
	f.Products[p.ID.Hex()] = p
	return p.ID.Hex()
}

func (f *Store) ListProducts(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	f.LastProductLimit = filter.Limit

	out := []models.Product{}
	for _, p := range f.Products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		if filter.Limit > 0 && int64(len(out)) >= filter.Limit {
			break
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *Store) GetProduct(_ context.Context, id string) (*models.Product, error) {
	if _, err := store.ParseID(id); err != nil {
		return nil, err
	}
	p, ok := f.Products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *Store) InsertProduct(_ context.Context, p *models.Product) error {
	f.AddProduct(p)
	return nil
}

func (f *Store) UpdateProduct(_ context.Context, id string, upd *models.ProductUpdate) (*models.Product, error) {
	if _, err := store.ParseID(id); err != nil {
		return nil, err
	}
	p, ok := f.Products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Image != nil {
		p.Image = *upd.Image
	}
	if upd.IsActive != nil {
		p.IsActive = *upd.IsActive
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (f *Store) SoftDeleteProduct(_ context.Context, id string) error {
	if _, err := store.ParseID(id); err != nil {
		return err
	}
	p, ok := f.Products[id]
	if !ok {
		return store.ErrNotFound
	}
	p.IsActive = false
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *Store) DecrementStock(_ context.Context, id string, quantity int) (int, error) {
	if _, err := store.ParseID(id); err != nil {
		return 0, err
	}
	p, ok := f.Products[id]
	if !ok {
		return 0, store.ErrNotFound
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now().UTC()
	return p.Stock, nil
}

func (f *Store) InsertTransaction(_ context.Context, txn *models.Transaction) error {
	txn.ID = primitive.NewObjectID()
	f.Txns = append(f.Txns, txn)
	return nil
}

func (f *Store) GetTransaction(_ context.Context, id string) (*models.Transaction, error) {
	if _, err := store.ParseID(id); err != nil {
		return nil, err
	}
	for _, txn := range f.Txns {
		if txn.ID.Hex() == id {
			cp := *txn
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *Store) ListTransactions(_ context.Context, limit, skip int64) ([]models.Transaction, error) {
	f.LastListLimit = limit
	f.LastListSkip = skip

	out := []models.Transaction{}
	for i := len(f.Txns) - 1; i >= 0; i-- {
		out = append(out, *f.Txns[i])
	}
	if skip < int64(len(out)) {
		out = out[skip:]
	} else {
		out = []models.Transaction{}
	}
	if limit < int64(len(out)) {
		out = out[:limit]
	}
	return out, nil
}

func (f *Store) CountTransactions(_ context.Context) (int64, error) {
	return int64(len(f.Txns)), nil
}

func (f *Store) CountActiveProducts(_ context.Context) (int64, error) {
	var n int64
	for _, p := range f.Products {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *Store) CountLowStock(_ context.Context, threshold int) (int64, error) {
	var n int64
	for _, p := range f.Products {
		if p.IsActive && p.Stock < threshold {
			n++
		}
	}
	return n, nil
}

func (f *Store) DistinctCategories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range f.Products {
		if p.IsActive && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (f *Store) SalesSince(_ context.Context, since time.Time) (float64, int64, error) {
	var revenue float64
	var count int64
	for _, txn := range f.Txns {
		if !txn.CreatedAt.Before(since) {
			revenue += txn.Total
			count++
		}
	}
	return revenue, count, nil
}
