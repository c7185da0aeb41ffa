package store

import (
	"context"
	"errors"
	"time"

	"pos-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListProducts retrieves products matching the filter in store-native order.
func (s *Store) ListProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.ActiveOnly {
		filter["is_active"] = true
	}

	opts := options.Find()
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cursor, err := s.products().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct retrieves a product by its hex identifier.
func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var product models.Product
	err = s.products().FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// InsertProduct persists a new product and fills in its assigned ID.
func (s *Store) InsertProduct(ctx context.Context, product *models.Product) error {
	res, err := s.products().InsertOne(ctx, product)
	if err != nil {
		return err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// UpdateProduct applies the non-nil fields of the update and returns the
// resulting document. updated_at is always refreshed.
func (s *Store) UpdateProduct(ctx context.Context, id string, upd *models.ProductUpdate) (*models.Product, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	set := updateDocument(upd, time.Now().UTC())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err = s.products().FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// SoftDeleteProduct flips is_active off. The document is retained and stays
// reachable by id.
func (s *Store) SoftDeleteProduct(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	res, err := s.products().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock atomically reduces a product's stock by quantity and
// returns the resulting stock level. No floor is enforced; stock may go
// negative under concurrent sales.
func (s *Store) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	oid, err := ParseID(id)
	if err != nil {
		return 0, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err = s.products().FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{
		"$inc": bson.M{"stock": -quantity},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return product.Stock, nil
}

// updateDocument builds the $set document for a partial update.
func updateDocument(upd *models.ProductUpdate, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Stock != nil {
		set["stock"] = *upd.Stock
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}
	return set
}
