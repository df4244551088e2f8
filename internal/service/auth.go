package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// Синтаксическая проверка email: непустые локальная часть, домен
// и доменная зона, без пробелов.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterUser создаёт аккаунт с ролью Regular и хэшированным паролем
// и сразу выдаёт пару токенов, как при входе.
// Занятые email или username — ErrUserExists.
func (s *Service) RegisterUser(ctx context.Context, username, email, password string) (*models.User, models.TokenPair, error) {
	const op = "service/auth/RegisterUser"

	if username == "" || email == "" || password == "" {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, ErrEmptyCredentials)
	}

	if !emailRe.MatchString(email) {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleRegular,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, ErrUserExists)
		}

		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.IssuePair(models.Claims{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	user.RefreshToken = pair.RefreshToken

	return user, pair, nil
}

// LoginUser проверяет учётные данные и выпускает пару токенов.
// Refresh-токен сохраняется на документе пользователя и служит
// якорем сессии до явного выхода.
//
// Порядок проверок фиксирован: пустые поля, синтаксис email,
// существование пользователя, совпадение пароля.
func (s *Service) LoginUser(ctx context.Context, email, password string) (*models.User, models.TokenPair, error) {
	const op = "service/auth/LoginUser"

	if email == "" || password == "" {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, ErrEmptyCredentials)
	}

	if !emailRe.MatchString(email) {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	user, err := s.storage.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, ErrWrongCredentials)
	}

	pair, err := s.IssuePair(models.Claims{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	user.RefreshToken = pair.RefreshToken

	return user, pair, nil
}

// LogoutUser завершает сессию по значению refresh-токена.
// Токен не проверяется криптографически: выход работает и для
// просроченного токена. Владелец ищется по точному совпадению
// сохранённого значения; если никто не найден — ErrUserNotFound.
func (s *Service) LogoutUser(ctx context.Context, refreshToken string) error {
	const op = "service/auth/LogoutUser"

	if refreshToken == "" {
		return fmt.Errorf("%s: %w", op, ErrNoRefreshToken)
	}

	user, err := s.storage.UserByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateRefreshToken(ctx, user.ID, ""); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserByUsername возвращает пользователя по username.
func (s *Service) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "service/auth/UserByUsername"

	user, err := s.storage.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// ListUsers возвращает всех пользователей (админская операция).
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "service/auth/ListUsers"

	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}
