package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveCategory создаёт категорию пользователя.
// Дубликат имени в пределах пользователя — storage.ErrAlreadyExists.
func (m *Mongo) SaveCategory(ctx context.Context, category *models.Category) error {
	const op = "storage/mongo/SaveCategory"

	now := time.Now().UTC().Truncate(time.Millisecond)
	category.CreatedAt = now
	category.UpdatedAt = now

	if _, err := m.categories.InsertOne(ctx, category); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CategoriesByUser возвращает категории пользователя, отсортированные по имени.
func (m *Mongo) CategoriesByUser(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	const op = "storage/mongo/CategoriesByUser"

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := m.categories.Find(ctx, bson.D{{Key: "user_id", Value: userID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var out []models.Category
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// DeleteCategory удаляет категорию пользователя.
// Чужая или несуществующая категория — storage.ErrNotFound.
func (m *Mongo) DeleteCategory(ctx context.Context, id, userID uuid.UUID) error {
	const op = "storage/mongo/DeleteCategory"

	res, err := m.categories.DeleteOne(ctx, bson.D{
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
