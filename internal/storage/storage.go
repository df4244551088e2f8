// Package storage задаёт контракт работы с хранилищем finance-трекера.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь/группа/категория/транзакция).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email/username/имя группы).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создаёт нового пользователя.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByUsername находит пользователя по username.
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	// UserByRefreshToken находит пользователя по точному значению
	// сохранённого refresh-токена. Единственный путь, где токен
	// сверяется по строковому равенству, а не по подписи.
	UserByRefreshToken(ctx context.Context, token string) (*models.User, error)
	// UpdateRefreshToken перезаписывает refresh-токен пользователя.
	// Пустая строка означает «разлогинен».
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error
	// ListUsers возвращает всех пользователей.
	ListUsers(ctx context.Context) ([]models.User, error)
}

// GroupStorage выполняет операции над группами.
type GroupStorage interface {
	// SaveGroup создаёт новую группу.
	SaveGroup(ctx context.Context, group *models.Group) error
	// GroupByName находит группу по имени.
	GroupByName(ctx context.Context, name string) (*models.Group, error)
	// AddGroupMember добавляет участника в группу.
	AddGroupMember(ctx context.Context, name string, member models.GroupMember) error
	// RemoveGroupMember удаляет участника группы по email.
	RemoveGroupMember(ctx context.Context, name, email string) error
	// DeleteGroup удаляет группу целиком.
	DeleteGroup(ctx context.Context, name string) error
}

// CategoryStorage выполняет операции над категориями.
type CategoryStorage interface {
	// SaveCategory создаёт категорию пользователя.
	SaveCategory(ctx context.Context, category *models.Category) error
	// CategoriesByUser возвращает категории пользователя.
	CategoriesByUser(ctx context.Context, userID uuid.UUID) ([]models.Category, error)
	// DeleteCategory удаляет категорию пользователя.
	DeleteCategory(ctx context.Context, id, userID uuid.UUID) error
}

// TransactionStorage выполняет операции над транзакциями.
type TransactionStorage interface {
	// SaveTransaction создаёт транзакцию.
	SaveTransaction(ctx context.Context, tx *models.Transaction) error
	// TransactionByID возвращает транзакцию по идентификатору.
	TransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	// TransactionsByUser возвращает транзакции пользователя,
	// отсортированные по occurred_at DESC.
	TransactionsByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
	// TransactionsByUsers возвращает транзакции набора пользователей
	// (просмотр группы), отсортированные по occurred_at DESC.
	TransactionsByUsers(ctx context.Context, userIDs []uuid.UUID) ([]models.Transaction, error)
	// UpdateTransaction перезаписывает изменяемые поля транзакции.
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error
	// DeleteTransaction удаляет транзакцию пользователя.
	DeleteTransaction(ctx context.Context, id, userID uuid.UUID) error
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	GroupStorage
	CategoryStorage
	TransactionStorage
	Close(ctx context.Context) error
}
