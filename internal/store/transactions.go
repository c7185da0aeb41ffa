package store

import (
	"context"
	"errors"

	"pos-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertTransaction persists a new transaction and fills in its assigned ID.
func (s *Store) InsertTransaction(ctx context.Context, txn *models.Transaction) error {
	res, err := s.transactions().InsertOne(ctx, txn)
	if err != nil {
		return err
	}
	txn.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetTransaction retrieves a transaction by its hex identifier.
func (s *Store) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var txn models.Transaction
	err = s.transactions().FindOne(ctx, bson.M{"_id": oid}).Decode(&txn)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// ListTransactions returns transactions newest first with skip/limit paging.
func (s *Store) ListTransactions(ctx context.Context, limit, skip int64) ([]models.Transaction, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.transactions().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	txns := []models.Transaction{}
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// CountTransactions counts every transaction ever recorded.
func (s *Store) CountTransactions(ctx context.Context) (int64, error) {
	return s.transactions().CountDocuments(ctx, bson.M{})
}
