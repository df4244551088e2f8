package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/storage"
)

func TestCreateTransaction_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	userID := uuid.New()
	st.EXPECT().SaveTransaction(gomock.Any(), gomock.Any()).Return(nil)

	tx, err := svc.CreateTransaction(context.Background(), userID, CreateTransactionParams{
		Amount:     -2500,
		Currency:   "USD",
		Note:       "coffee",
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, userID, tx.UserID)
	require.Equal(t, int64(-2500), tx.Amount)
	require.NotEqual(t, uuid.Nil, tx.ID)
}

func TestCreateTransaction_Validation(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.CreateTransaction(context.Background(), uuid.New(), CreateTransactionParams{Currency: "USD"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.CreateTransaction(context.Background(), uuid.New(), CreateTransactionParams{Amount: 100})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateTransaction_NotOwned(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(storage.ErrNotFound)

	_, err := svc.UpdateTransaction(context.Background(), uuid.New(), uuid.New(), CreateTransactionParams{
		Amount:   100,
		Currency: "USD",
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().DeleteTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(storage.ErrNotFound)

	err := svc.DeleteTransaction(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCategory_Duplicate(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveCategory(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)

	_, err := svc.CreateCategory(context.Background(), uuid.New(), "food")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCategoriesByUser(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	userID := uuid.New()
	want := []models.Category{
		{ID: uuid.New(), UserID: userID, Name: "food"},
		{ID: uuid.New(), UserID: userID, Name: "rent"},
	}
	st.EXPECT().CategoriesByUser(gomock.Any(), userID).Return(want, nil)

	got, err := svc.CategoriesByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
