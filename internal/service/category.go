package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/storage"
)

// CreateCategory создаёт категорию пользователя.
// Повторное имя в пределах пользователя — ErrAlreadyExists.
func (s *Service) CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*models.Category, error) {
	const op = "service/category/CreateCategory"

	if name == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	category := &models.Category{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
	}

	if err := s.storage.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return category, nil
}

// CategoriesByUser возвращает категории пользователя.
func (s *Service) CategoriesByUser(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	const op = "service/category/CategoriesByUser"

	categories, err := s.storage.CategoriesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return categories, nil
}

// DeleteCategory удаляет категорию пользователя.
func (s *Service) DeleteCategory(ctx context.Context, id, userID uuid.UUID) error {
	const op = "service/category/DeleteCategory"

	if err := s.storage.DeleteCategory(ctx, id, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
