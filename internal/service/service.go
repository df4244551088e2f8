// Package service содержит бизнес-логику финансового трекера:
// регистрацию и вход, выпуск и проверку пары JWT-токенов,
// авторизацию запросов с прозрачным продлением access-токена
// и CRUD-операции над категориями, транзакциями и группами.
package service

import (
	"errors"

	"github.com/pribylovaa/go-finance-tracker/internal/cache"
	"github.com/pribylovaa/go-finance-tracker/internal/config"
	"github.com/pribylovaa/go-finance-tracker/internal/storage"
)

// Сентинельные ошибки сервисного слоя.
// Транспорт мапит их на HTTP-статусы и тексты причин.
var (
	// ErrInvalidArgument — некорректные входные данные.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEmptyCredentials — пустые email или пароль при входе.
	ErrEmptyCredentials = errors.New("empty credentials")
	// ErrInvalidEmail — email не проходит синтаксическую проверку.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrUserNotFound — пользователь с таким email не зарегистрирован.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongCredentials — пароль не совпал с сохранённым хэшем.
	ErrWrongCredentials = errors.New("wrong credentials")
	// ErrUserExists — email или username уже заняты.
	ErrUserExists = errors.New("user already exists")
	// ErrNoRefreshToken — запрос на выход без refresh-токена.
	ErrNoRefreshToken = errors.New("no refresh token")
	// ErrGroupNotFound — группа с таким именем не существует.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNotFound — запрошенная сущность не существует.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — сущность с такими ключами уже существует.
	ErrAlreadyExists = errors.New("already exists")
)

// Service объединяет зависимости бизнес-логики.
type Service struct {
	storage storage.Storage
	codec   *Codec
	groups  cache.GroupCache
	cfg     config.AuthConfig
}

// New собирает сервис. Кэш групп опционален: при nil проверка
// членства всегда идёт в хранилище.
func New(st storage.Storage, groups cache.GroupCache, cfg config.AuthConfig) *Service {
	return &Service{
		storage: st,
		codec:   NewCodec(cfg.JWTSecret),
		groups:  groups,
		cfg:     cfg,
	}
}
