// Package models содержит доменные сущности finance-трекера.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role — роль пользователя в системе.
type Role string

const (
	RoleRegular Role = "Regular"
	RoleAdmin   Role = "Admin"
)

// User — модель пользователя в системе.
//
// Важно:
//   - Email и Username уникальны (уникальные индексы в MongoDB);
//   - RefreshToken — серверная «якорная» часть сессии: непустое значение
//     означает «залогинен», пустое — «разлогинен». Мутируется только
//     логином (запись) и логаутом (очистка);
//   - PasswordHash — bcrypt-хэш, наружу никогда не отдаётся.
type User struct {
	ID           uuid.UUID `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Role         Role      `bson:"role"`
	RefreshToken string    `bson:"refresh_token,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}
