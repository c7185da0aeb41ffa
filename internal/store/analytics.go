package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CountActiveProducts counts products that have not been soft-deleted.
func (s *Store) CountActiveProducts(ctx context.Context) (int64, error) {
	return s.products().CountDocuments(ctx, bson.M{"is_active": true})
}

// CountLowStock counts active products with stock below the threshold.
func (s *Store) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	return s.products().CountDocuments(ctx, bson.M{
		"stock":     bson.M{"$lt": threshold},
		"is_active": true,
	})
}

// DistinctCategories lists the distinct categories of active products.
func (s *Store) DistinctCategories(ctx context.Context) ([]string, error) {
	values, err := s.products().Distinct(ctx, "category", bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if c, ok := v.(string); ok {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// SalesSince aggregates revenue and transaction count for transactions
// created at or after the given instant. Returns zeros when nothing matches.
func (s *Store) SalesSince(ctx context.Context, since time.Time) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := s.transactions().Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
		Count int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Total, results[0].Count, nil
}
