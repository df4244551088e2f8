package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// SaveGroup создаёт новую группу.
// Конфликт уникальности имени — storage.ErrAlreadyExists.
func (m *Mongo) SaveGroup(ctx context.Context, group *models.Group) error {
	const op = "storage/mongo/SaveGroup"

	now := time.Now().UTC().Truncate(time.Millisecond)
	group.CreatedAt = now
	group.UpdatedAt = now
	if group.Members == nil {
		group.Members = []models.GroupMember{}
	}

	if _, err := m.groups.InsertOne(ctx, group); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GroupByName находит группу по имени.
func (m *Mongo) GroupByName(ctx context.Context, name string) (*models.Group, error) {
	const op = "storage/mongo/GroupByName"

	var group models.Group
	if err := m.groups.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&group); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	group.CreatedAt = group.CreatedAt.UTC()
	group.UpdatedAt = group.UpdatedAt.UTC()

	return &group, nil
}

// AddGroupMember добавляет участника в группу.
// $addToSet защищает от дублей при повторном добавлении.
func (m *Mongo) AddGroupMember(ctx context.Context, name string, member models.GroupMember) error {
	const op = "storage/mongo/AddGroupMember"

	res, err := m.groups.UpdateOne(ctx,
		bson.D{{Key: "name", Value: name}},
		bson.D{
			{Key: "$addToSet", Value: bson.D{{Key: "members", Value: member}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().UTC().Truncate(time.Millisecond)}}},
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// RemoveGroupMember удаляет участника группы по email.
func (m *Mongo) RemoveGroupMember(ctx context.Context, name, email string) error {
	const op = "storage/mongo/RemoveGroupMember"

	res, err := m.groups.UpdateOne(ctx,
		bson.D{{Key: "name", Value: name}},
		bson.D{
			{Key: "$pull", Value: bson.D{{Key: "members", Value: bson.D{{Key: "email", Value: email}}}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now().UTC().Truncate(time.Millisecond)}}},
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteGroup удаляет группу целиком.
func (m *Mongo) DeleteGroup(ctx context.Context, name string) error {
	const op = "storage/mongo/DeleteGroup"

	res, err := m.groups.DeleteOne(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
