package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction — финансовая транзакция пользователя.
//
//   - Amount хранится в минорных единицах валюты (копейки/центы),
//     знак задаёт направление: расход < 0 < доход;
//   - CategoryID — ссылка на категорию пользователя (может быть
//     uuid.Nil для неразмеченных транзакций);
//   - OccurredAt — момент самой операции, CreatedAt/UpdatedAt — служебные.
type Transaction struct {
	ID         uuid.UUID `bson:"_id"`
	UserID     uuid.UUID `bson:"user_id"`
	CategoryID uuid.UUID `bson:"category_id,omitempty"`
	Amount     int64     `bson:"amount"`
	Currency   string    `bson:"currency"`
	Note       string    `bson:"note,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}
