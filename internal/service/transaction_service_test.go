package service

import (
	"context"
	"errors"
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

func newTestTransactionService(fs *storetest.Store) *TransactionService {
	return NewTransactionService(fs, nil, nil, 10, time.Hour)
}

func TestFormatTransactionNumber(t *testing.T) {
	assert.Equal(t, "TXN-000001", FormatTransactionNumber(1))
	assert.Equal(t, "TXN-000042", FormatTransactionNumber(42))
	assert.Equal(t, "TXN-123456", FormatTransactionNumber(123456))
	assert.Equal(t, "TXN-1234567", FormatTransactionNumber(1234567))
}

func TestCreateTransactionSequence(t *testing.T) {
	fs := storetest.New()
	svc := newTestTransactionService(fs)

	for i := 1; i <= 3; i++ {
		txn, err := svc.Create(context.Background(), &models.TransactionCreate{
			Items: []models.TransactionItem{{ProductID: primitive.NewObjectID().Hex(), Quantity: 1}},
			Total: 10,
		})
		require.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("TXN-%06d", i), txn.TransactionNumber)
		assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
		assert.False(t, txn.ID.IsZero())
	}
}

func TestCreateTransactionDefaultsPaymentMethod(t *testing.T) {
	svc := newTestTransactionService(storetest.New())

	txn, err := svc.Create(context.Background(), &models.TransactionCreate{
		Items: []models.TransactionItem{{ProductID: "ignored", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "cash", txn.PaymentMethod)

	txn, err = svc.Create(context.Background(), &models.TransactionCreate{
		Items:         []models.TransactionItem{{ProductID: "ignored", Quantity: 1}},
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, "card", txn.PaymentMethod)
}

func TestCreateTransactionDecrementsStock(t *testing.T) {
	fs := storetest.New()
	id1 := fs.AddProduct(&models.Product{Name: "Latte", Stock: 20, IsActive: true})
	id2 := fs.AddProduct(&models.Product{Name: "Bagel", Stock: 15, IsActive: true})
	svc := newTestTransactionService(fs)

	_, err := svc.Create(context.Background(), &models.TransactionCreate{
		Items: []models.TransactionItem{
			{ProductID: id1, ProductName: "Latte", Price: 4, Quantity: 2, Total: 8},
			{ProductID: id2, ProductName: "Bagel", Price: 3, Quantity: 3, Total: 9},
		},
		Subtotal: 17,
		Total:    17,
	})
	require.NoError(t, err)

	assert.Equal(t, 18, fs.Products[id1].Stock)
	assert.Equal(t, 12, fs.Products[id2].Stock)
	// Snapshots stay untouched.
	assert.Equal(t, "Latte", fs.Products[id1].Name)
}

func TestCreateTransactionSkipsUnknownProducts(t *testing.T) {
	fs := storetest.New()
	id := fs.AddProduct(&models.Product{Name: "Latte", Stock: 20, IsActive: true})
	svc := newTestTransactionService(fs)

	txn, err := svc.Create(context.Background(), &models.TransactionCreate{
		Items: []models.TransactionItem{
			{ProductID: "not-a-valid-id", Quantity: 5},
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 5},
			{ProductID: id, Quantity: 1},
		},
		Total: 4,
	})
	require.NoError(t, err)

	// Malformed and unknown ids are skipped; the sale is still recorded
	// with all three line items, and only the real product is touched.
	assert.Len(t, txn.Items, 3)
	assert.Equal(t, 19, fs.Products[id].Stock)
}

func TestCreateTransactionAllowsNegativeStock(t *testing.T) {
	fs := storetest.New()
	id := fs.AddProduct(&models.Product{Name: "Latte", Stock: 1, IsActive: true})
	svc := newTestTransactionService(fs)

	_, err := svc.Create(context.Background(), &models.TransactionCreate{
		Items: []models.TransactionItem{{ProductID: id, Quantity: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, -4, fs.Products[id].Stock)
}

func TestGetTransactionErrors(t *testing.T) {
	svc := newTestTransactionService(storetest.New())

	_, err := svc.Get(context.Background(), "bogus")
	assert.ErrorIs(t, err, store.ErrInvalidID)

	_, err = svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListTransactionsDefaults(t *testing.T) {
	fs := storetest.New()
	svc := newTestTransactionService(fs)

	_, err := svc.List(context.Background(), 0, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(50), fs.LastListLimit)
	assert.Equal(t, int64(0), fs.LastListSkip)
}

func TestListTransactionsNewestFirst(t *testing.T) {
	fs := storetest.New()
	svc := newTestTransactionService(fs)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), &models.TransactionCreate{
			Items: []models.TransactionItem{{ProductID: "x", Quantity: 1}},
			Total: float64(i),
		})
		require.NoError(t, err)
	}

	txns, err := svc.List(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "TXN-000003", txns[0].TransactionNumber)
	assert.Equal(t, "TXN-000002", txns[1].TransactionNumber)
}

func TestCreateTransactionAcceptsEmptyItems(t *testing.T) {
	fs := storetest.New()
	svc := newTestTransactionService(fs)

	txn, err := svc.Create(context.Background(), &models.TransactionCreate{
		Items:    []models.TransactionItem{},
		Subtotal: 0,
		Total:    0,
	})
	require.NoError(t, err)

	assert.Equal(t, "TXN-000001", txn.TransactionNumber)
	assert.Empty(t, txn.Items)
	require.Len(t, fs.Txns, 1)
}

// mapIdemCache is an in-memory IdempotencyCache.
type mapIdemCache struct {
	entries map[string]string
}

func newMapIdemCache() *mapIdemCache {
	return &mapIdemCache{entries: map[string]string{}}
}

func (c *mapIdemCache) GetIdempotentResult(_ context.Context, key string) (string, error) {
	return c.entries[key], nil
}

func (c *mapIdemCache) SetIdempotentResult(_ context.Context, key, id string, _ time.Duration) error {
	c.entries[key] = id
	return nil
}

type failingIdemCache struct{}

func (failingIdemCache) GetIdempotentResult(context.Context, string) (string, error) {
	return "", errors.New("redis down")
}

func (failingIdemCache) SetIdempotentResult(context.Context, string, string, time.Duration) error {
	return errors.New("redis down")
}

func TestCreateTransactionIdempotentReplay(t *testing.T) {
	fs := storetest.New()
	id := fs.AddProduct(&models.Product{Name: "Latte", Stock: 20, IsActive: true})
	svc := NewTransactionService(fs, newMapIdemCache(), nil, 10, time.Hour)

	req := &models.TransactionCreate{
		Items:          []models.TransactionItem{{ProductID: id, Quantity: 2}},
		Total:          9,
		IdempotencyKey: "order-717",
	}
	first, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.TransactionNumber, second.TransactionNumber)
	require.Len(t, fs.Txns, 1)
	assert.Equal(t, 18, fs.Products[id].Stock)

	// A different key records a fresh transaction.
	req.IdempotencyKey = "order-718"
	third, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "TXN-000002", third.TransactionNumber)
	require.Len(t, fs.Txns, 2)
}

func TestCreateTransactionIdempotentKeyWithMissingTransaction(t *testing.T) {
	fs := storetest.New()
	cache := newMapIdemCache()
	cache.entries["order-717"] = primitive.NewObjectID().Hex()
	svc := NewTransactionService(fs, cache, nil, 10, time.Hour)

	// The cached id no longer resolves, so the request is processed anew.
	txn, err := svc.Create(context.Background(), &models.TransactionCreate{
		Items:          []models.TransactionItem{},
		IdempotencyKey: "order-717",
	})
	require.NoError(t, err)
	assert.Equal(t, "TXN-000001", txn.TransactionNumber)
	require.Len(t, fs.Txns, 1)
	assert.Equal(t, txn.ID.Hex(), cache.entries["order-717"])
}

func TestCreateTransactionCacheFailureIsNonFatal(t *testing.T) {
	fs := storetest.New()
	svc := NewTransactionService(fs, failingIdemCache{}, nil, 10, time.Hour)

	txn, err := svc.Create(context.Background(), &models.TransactionCreate{
		Items:          []models.TransactionItem{},
		IdempotencyKey: "order-717",
	})
	require.NoError(t, err)
	assert.Equal(t, "TXN-000001", txn.TransactionNumber)
}
