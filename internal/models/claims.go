package models

// Claims — identity-утверждения, зашитые в подписанный токен.
// Обе стороны пары (access и refresh) несут одинаковый набор полей.
type Claims struct {
	ID       string
	Username string
	Email    string
	Role     Role
}

// Complete сообщает о структурной полноте утверждений:
// токен без username/email/role считается некорректным независимо
// от валидности подписи.
func (c Claims) Complete() bool {
	return c.Username != "" && c.Email != "" && c.Role != ""
}

// SameIdentity сравнивает identity-поля двух утверждений.
// ID намеренно не участвует в сравнении — он не входит в инвариант
// согласованности пары.
func (c Claims) SameIdentity(other Claims) bool {
	return c.Username == other.Username &&
		c.Email == other.Email &&
		c.Role == other.Role
}
