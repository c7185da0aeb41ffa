package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pos-service/internal/broker"
	"pos-service/internal/models"
	"pos-service/internal/store"
	"pos-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionStore is the data access surface the transaction service
// needs. *store.Store satisfies it.
type TransactionStore interface {
	InsertTransaction(ctx context.Context, txn *models.Transaction) error
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, limit, skip int64) ([]models.Transaction, error)
	CountTransactions(ctx context.Context) (int64, error)
	DecrementStock(ctx context.Context, id string, quantity int) (int, error)
}

// IdempotencyCache stores the transaction recorded for an idempotency
// key so duplicate requests can be replayed. *redisclient.Client
// satisfies it.
type IdempotencyCache interface {
	GetIdempotentResult(ctx context.Context, key string) (string, error)
	SetIdempotentResult(ctx context.Context, key, id string, ttl time.Duration) error
}

// TransactionService records sales and keeps product stock in step.
type TransactionService struct {
	store             TransactionStore
	cache             IdempotencyCache
	publisher         *broker.EventPublisher
	lowStockThreshold int
	idempotencyTTL    time.Duration
	logger            *zap.Logger
}

// NewTransactionService creates a new transaction service. cache and
// publisher may be nil, which disables idempotency replay and event
// publishing respectively.
func NewTransactionService(
	store TransactionStore,
	cache IdempotencyCache,
	publisher *broker.EventPublisher,
	lowStockThreshold int,
	idempotencyTTL time.Duration,
) *TransactionService {
	return &TransactionService{
		store:             store,
		cache:             cache,
		publisher:         publisher,
		lowStockThreshold: lowStockThreshold,
		idempotencyTTL:    idempotencyTTL,
		logger:            util.GetLogger(),
	}
}

// FormatTransactionNumber renders a sequence number as TXN-NNNNNN.
func FormatTransactionNumber(seq int64) string {
	return fmt.Sprintf("TXN-%06d", seq)
}

// Create records a sale. The sequence number derives from the current
// transaction count; each well-formed line item decrements its product's
// stock. Items with malformed or unknown product ids are skipped without
// failing the request. The multi-step flow is not fenced: stock decrements
// are atomic per product but the count read and the insert are not.
func (s *TransactionService) Create(ctx context.Context, req *models.TransactionCreate) (*models.Transaction, error) {
	ctx, span := util.StartSpan(ctx, "TransactionService.Create")
	defer span.End()

	if txn := s.replayIdempotent(ctx, req.IdempotencyKey); txn != nil {
		return txn, nil
	}

	count, err := s.store.CountTransactions(ctx)
	if err != nil {
		util.TransactionsFailedTotal.WithLabelValues("count_error").Inc()
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	for _, item := range req.Items {
		stock, err := s.store.DecrementStock(ctx, item.ProductID, item.Quantity)
		if errors.Is(err, store.ErrInvalidID) || errors.Is(err, store.ErrNotFound) {
			s.logger.Debug("Skipping stock update",
				zap.String("product_id", item.ProductID),
				zap.Error(err))
			continue
		}
		if err != nil {
			util.TransactionsFailedTotal.WithLabelValues("stock_error").Inc()
			return nil, fmt.Errorf("failed to update stock for product %s: %w", item.ProductID, err)
		}

		util.StockDecrementsTotal.Inc()
		if stock < s.lowStockThreshold {
			s.publishStockLow(ctx, item.ProductID, stock)
		}
	}

	txn := &models.Transaction{
		TransactionNumber: FormatTransactionNumber(count + 1),
		Items:             req.Items,
		Subtotal:          req.Subtotal,
		Tax:               req.Tax,
		Discount:          req.Discount,
		Total:             req.Total,
		PaymentMethod:     req.PaymentMethod,
		CustomerName:      req.CustomerName,
		Notes:             req.Notes,
		Status:            models.TransactionStatusCompleted,
		CreatedAt:         time.Now().UTC(),
	}
	if txn.PaymentMethod == "" {
		txn.PaymentMethod = "cash"
	}

	if err := s.store.InsertTransaction(ctx, txn); err != nil {
		util.TransactionsFailedTotal.WithLabelValues("insert_error").Inc()
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	util.TransactionsCreatedTotal.Inc()
	if txn.Total > 0 {
		util.RevenueTotal.Add(txn.Total)
	}
	s.logger.Info("Transaction recorded",
		zap.String("transaction_id", txn.ID.Hex()),
		zap.String("transaction_number", txn.TransactionNumber),
		zap.Float64("total", txn.Total))

	s.rememberIdempotent(ctx, req.IdempotencyKey, txn.ID.Hex())
	s.publishCompleted(ctx, txn)

	return txn, nil
}

// List returns transactions newest first.
func (s *TransactionService) List(ctx context.Context, limit, skip int64) ([]models.Transaction, error) {
	ctx, span := util.StartSpan(ctx, "TransactionService.List")
	defer span.End()

	if limit <= 0 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}
	return s.store.ListTransactions(ctx, limit, skip)
}

// Get retrieves a single transaction by id.
func (s *TransactionService) Get(ctx context.Context, id string) (*models.Transaction, error) {
	ctx, span := util.StartSpan(ctx, "TransactionService.Get")
	defer span.End()

	return s.store.GetTransaction(ctx, id)
}

// replayIdempotent returns the previously recorded transaction for the
// key, or nil when there is none (or idempotency is disabled).
func (s *TransactionService) replayIdempotent(ctx context.Context, key string) *models.Transaction {
	if key == "" || s.cache == nil {
		return nil
	}

	id, err := s.cache.GetIdempotentResult(ctx, key)
	if err != nil {
		s.logger.Warn("Idempotency lookup failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if id == "" {
		return nil
	}

	txn, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		s.logger.Warn("Idempotent transaction missing from store",
			zap.String("key", key),
			zap.String("transaction_id", id),
			zap.Error(err))
		return nil
	}

	s.logger.Info("Duplicate transaction request detected",
		zap.String("key", key),
		zap.String("transaction_id", id))
	return txn
}

func (s *TransactionService) rememberIdempotent(ctx context.Context, key, id string) {
	if key == "" || s.cache == nil {
		return
	}
	if err := s.cache.SetIdempotentResult(ctx, key, id, s.idempotencyTTL); err != nil {
		s.logger.Warn("Failed to record idempotency key", zap.String("key", key), zap.Error(err))
	}
}

func (s *TransactionService) publishCompleted(ctx context.Context, txn *models.Transaction) {
	if s.publisher == nil {
		return
	}

	event := &models.TransactionCompletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeTransactionCompleted,
			Timestamp: time.Now().UTC(),
		},
		TransactionID:     txn.ID.Hex(),
		TransactionNumber: txn.TransactionNumber,
		Total:             txn.Total,
		PaymentMethod:     txn.PaymentMethod,
		Items:             txn.Items,
	}
	if err := s.publisher.PublishTransactionCompleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish TransactionCompleted event", zap.Error(err))
	}
}

func (s *TransactionService) publishStockLow(ctx context.Context, productID string, stock int) {
	if s.publisher == nil {
		return
	}

	event := &models.ProductStockLowEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeProductStockLow,
			Timestamp: time.Now().UTC(),
		},
		ProductID: productID,
		Stock:     stock,
		Threshold: s.lowStockThreshold,
	}
	if err := s.publisher.PublishProductStockLow(ctx, event); err != nil {
		s.logger.Error("Failed to publish ProductStockLow event", zap.Error(err))
	}
}
