package models

import (
	"time"

	"github.com/google/uuid"
)

// Category — пользовательская категория транзакций.
// Имя уникально в пределах одного пользователя.
type Category struct {
	ID        uuid.UUID `bson:"_id"`
	UserID    uuid.UUID `bson:"user_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}
