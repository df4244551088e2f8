package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/storage"
)

// CreateTransactionParams — входные данные новой транзакции.
type CreateTransactionParams struct {
	CategoryID uuid.UUID
	Amount     int64
	Currency   string
	Note       string
	OccurredAt time.Time
}

// CreateTransaction создаёт транзакцию пользователя.
// Сумма хранится в минорных единицах валюты и не может быть нулевой.
func (s *Service) CreateTransaction(ctx context.Context, userID uuid.UUID, params CreateTransactionParams) (*models.Transaction, error) {
	const op = "service/transaction/CreateTransaction"

	if params.Amount == 0 || params.Currency == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	tx := &models.Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: params.CategoryID,
		Amount:     params.Amount,
		Currency:   params.Currency,
		Note:       params.Note,
		OccurredAt: params.OccurredAt,
	}

	if err := s.storage.SaveTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tx, nil
}

// TransactionsByUser возвращает транзакции пользователя.
func (s *Service) TransactionsByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	const op = "service/transaction/TransactionsByUser"

	txs, err := s.storage.TransactionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return txs, nil
}

// UpdateTransaction обновляет транзакцию пользователя.
// Чужая транзакция неотличима от несуществующей — ErrNotFound.
func (s *Service) UpdateTransaction(ctx context.Context, userID, id uuid.UUID, params CreateTransactionParams) (*models.Transaction, error) {
	const op = "service/transaction/UpdateTransaction"

	if params.Amount == 0 || params.Currency == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	tx := &models.Transaction{
		ID:         id,
		UserID:     userID,
		CategoryID: params.CategoryID,
		Amount:     params.Amount,
		Currency:   params.Currency,
		Note:       params.Note,
		OccurredAt: params.OccurredAt,
	}

	if err := s.storage.UpdateTransaction(ctx, tx); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tx, nil
}

// DeleteTransaction удаляет транзакцию пользователя.
func (s *Service) DeleteTransaction(ctx context.Context, id, userID uuid.UUID) error {
	const op = "service/transaction/DeleteTransaction"

	if err := s.storage.DeleteTransaction(ctx, id, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
