package models

import (
	"time"

	"github.com/google/uuid"
)

// GroupMember — участник группы: email + ссылка на аккаунт.
type GroupMember struct {
	Email  string    `bson:"email"`
	UserID uuid.UUID `bson:"user_id"`
}

// Group — группа для совместного просмотра транзакций.
// Имя уникально; для авторизации по членству достаточно множества
// email-адресов участников.
type Group struct {
	ID        uuid.UUID     `bson:"_id"`
	Name      string        `bson:"name"`
	Members   []GroupMember `bson:"members"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// MemberEmails возвращает email-адреса всех участников группы.
func (g Group) MemberEmails() []string {
	emails := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		emails = append(emails, m.Email)
	}

	return emails
}

// MemberIDs возвращает идентификаторы аккаунтов всех участников группы.
func (g Group) MemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(g.Members))
	for _, m := range g.Members {
		ids = append(ids, m.UserID)
	}

	return ids
}
