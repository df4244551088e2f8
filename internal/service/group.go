package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-finance-tracker/internal/cache"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/pkg/log"
	"github.com/pribylovaa/go-finance-tracker/internal/storage"
)

// CreateGroup создаёт группу; создатель становится первым участником.
func (s *Service) CreateGroup(ctx context.Context, name string, creator models.Claims) (*models.Group, error) {
	const op = "service/group/CreateGroup"

	if name == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	creatorID, err := uuid.Parse(creator.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: parse creator id: %w", op, ErrInvalidArgument)
	}

	group := &models.Group{
		ID:   uuid.New(),
		Name: name,
		Members: []models.GroupMember{
			{Email: creator.Email, UserID: creatorID},
		},
	}

	if err := s.storage.SaveGroup(ctx, group); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return group, nil
}

// GroupByName возвращает группу по имени.
func (s *Service) GroupByName(ctx context.Context, name string) (*models.Group, error) {
	const op = "service/group/GroupByName"

	group, err := s.storage.GroupByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrGroupNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return group, nil
}

// AddGroupMember добавляет зарегистрированного пользователя в группу
// по email и сбрасывает кэш состава.
func (s *Service) AddGroupMember(ctx context.Context, groupName, email string) error {
	const op = "service/group/AddGroupMember"

	if email == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	user, err := s.storage.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	member := models.GroupMember{Email: user.Email, UserID: user.ID}
	if err := s.storage.AddGroupMember(ctx, groupName, member); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrGroupNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateGroup(ctx, groupName)

	return nil
}

// RemoveGroupMember убирает участника группы и сбрасывает кэш состава.
func (s *Service) RemoveGroupMember(ctx context.Context, groupName, email string) error {
	const op = "service/group/RemoveGroupMember"

	if email == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.RemoveGroupMember(ctx, groupName, email); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrGroupNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateGroup(ctx, groupName)

	return nil
}

// DeleteGroup удаляет группу и сбрасывает кэш состава.
func (s *Service) DeleteGroup(ctx context.Context, name string) error {
	const op = "service/group/DeleteGroup"

	if err := s.storage.DeleteGroup(ctx, name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrGroupNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateGroup(ctx, name)

	return nil
}

// GroupMemberEmails возвращает email-участников группы.
// Сначала кэш, при промахе — хранилище с прогревом кэша.
// Ошибки кэша не фатальны: при сбое Redis проверка идёт в хранилище.
func (s *Service) GroupMemberEmails(ctx context.Context, name string) ([]string, error) {
	const op = "service/group/GroupMemberEmails"

	if s.groups != nil {
		emails, err := s.groups.Members(ctx, name)
		if err == nil {
			return emails, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.From(ctx).Warn("group cache lookup failed",
				slog.String("group", name),
				slog.String("err", err.Error()),
			)
		}
	}

	group, err := s.GroupByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	emails := group.MemberEmails()

	if s.groups != nil {
		if err := s.groups.SetMembers(ctx, name, emails); err != nil {
			log.From(ctx).Warn("group cache warmup failed",
				slog.String("group", name),
				slog.String("err", err.Error()),
			)
		}
	}

	return emails, nil
}

// GroupTransactions возвращает транзакции всех участников группы.
func (s *Service) GroupTransactions(ctx context.Context, name string) ([]models.Transaction, error) {
	const op = "service/group/GroupTransactions"

	group, err := s.GroupByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	txs, err := s.storage.TransactionsByUsers(ctx, group.MemberIDs())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return txs, nil
}

// invalidateGroup сбрасывает кэш состава; сбой кэша только логируется.
func (s *Service) invalidateGroup(ctx context.Context, name string) {
	if s.groups == nil {
		return
	}

	if err := s.groups.Invalidate(ctx, name); err != nil {
		log.From(ctx).Warn("group cache invalidation failed",
			slog.String("group", name),
			slog.String("err", err.Error()),
		)
	}
}
