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
)

// Проверка на соответствие интерфейсу Storage.
var _ storage.Storage = (*Mongo)(nil)

// SaveUser создаёт нового пользователя.
// Конфликт уникальности email/username — storage.ErrAlreadyExists.
func (m *Mongo) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage/mongo/SaveUser"

	now := time.Now().UTC().Truncate(time.Millisecond)
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := m.users.InsertOne(ctx, user); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserByEmail находит пользователя по email.
func (m *Mongo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage/mongo/UserByEmail"

	return m.findUser(ctx, op, bson.D{{Key: "email", Value: email}})
}

// UserByUsername находит пользователя по username.
func (m *Mongo) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage/mongo/UserByUsername"

	return m.findUser(ctx, op, bson.D{{Key: "username", Value: username}})
}

// UserByRefreshToken находит пользователя по точному значению сохранённого
// refresh-токена. Пустое значение не матчится ни с кем: пустая строка в
// документе означает «разлогинен».
func (m *Mongo) UserByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	const op = "storage/mongo/UserByRefreshToken"

	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return m.findUser(ctx, op, bson.D{{Key: "refresh_token", Value: token}})
}

// UpdateRefreshToken перезаписывает refresh-токен пользователя.
// Пустая строка снимает поле с документа (логаут).
func (m *Mongo) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	const op = "storage/mongo/UpdateRefreshToken"

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "refresh_token", Value: token},
			{Key: "updated_at", Value: time.Now().UTC().Truncate(time.Millisecond)},
		}},
	}
	if token == "" {
		update = bson.D{
			{Key: "$unset", Value: bson.D{{Key: "refresh_token", Value: ""}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().UTC().Truncate(time.Millisecond)}}},
		}
	}

	res, err := m.users.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListUsers возвращает всех пользователей, отсортированных по username.
func (m *Mongo) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage/mongo/ListUsers"

	cur, err := m.users.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// findUser — общий лукап одного пользователя по фильтру.
func (m *Mongo) findUser(ctx context.Context, op string, filter bson.D) (*models.User, error) {
	var user models.User
	if err := m.users.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()

	return &user, nil
}
