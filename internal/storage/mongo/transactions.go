package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveTransaction создаёт транзакцию.
func (m *Mongo) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	const op = "storage/mongo/SaveTransaction"

	now := time.Now().UTC().Truncate(time.Millisecond)
	tx.CreatedAt = now
	tx.UpdatedAt = now
	if tx.OccurredAt.IsZero() {
		tx.OccurredAt = now
	}

	if _, err := m.transactions.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// TransactionByID возвращает транзакцию по идентификатору.
func (m *Mongo) TransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	const op = "storage/mongo/TransactionByID"

	var tx models.Transaction
	if err := m.transactions.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&tx); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &tx, nil
}

// TransactionsByUser возвращает транзакции пользователя (occurred_at DESC).
func (m *Mongo) TransactionsByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	const op = "storage/mongo/TransactionsByUser"

	return m.findTransactions(ctx, op, bson.D{{Key: "user_id", Value: userID}})
}

// TransactionsByUsers возвращает транзакции набора пользователей (occurred_at DESC).
// Пустой набор даёт пустую выборку без похода в БД.
func (m *Mongo) TransactionsByUsers(ctx context.Context, userIDs []uuid.UUID) ([]models.Transaction, error) {
	const op = "storage/mongo/TransactionsByUsers"

	if len(userIDs) == 0 {
		return []models.Transaction{}, nil
	}

	return m.findTransactions(ctx, op, bson.D{
		{Key: "user_id", Value: bson.D{{Key: "$in", Value: userIDs}}},
	})
}

// UpdateTransaction перезаписывает изменяемые поля транзакции.
// Владение проверяется фильтром по user_id.
func (m *Mongo) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	const op = "storage/mongo/UpdateTransaction"

	res, err := m.transactions.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: tx.ID},
			{Key: "user_id", Value: tx.UserID},
		},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "category_id", Value: tx.CategoryID},
			{Key: "amount", Value: tx.Amount},
			{Key: "currency", Value: tx.Currency},
			{Key: "note", Value: tx.Note},
			{Key: "occurred_at", Value: tx.OccurredAt},
			{Key: "updated_at", Value: time.Now().UTC().Truncate(time.Millisecond)},
		}}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteTransaction удаляет транзакцию пользователя.
func (m *Mongo) DeleteTransaction(ctx context.Context, id, userID uuid.UUID) error {
	const op = "storage/mongo/DeleteTransaction"

	res, err := m.transactions.DeleteOne(ctx, bson.D{
		{Key: "_id", Value: id},
		{Key: "user_id", Value: userID},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// findTransactions — общая выборка с сортировкой по occurred_at DESC.
func (m *Mongo) findTransactions(ctx context.Context, op string, filter bson.D) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: -1}})
	cur, err := m.transactions.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var out []models.Transaction
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
