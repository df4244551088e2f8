// Package redact маскирует чувствительные значения перед записью в журнал.
package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := parts[0], parts[1]
	if len(local) > 2 {
		local = local[:2] + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

func Token() string    { return "[REDACTED_TOKEN]" }
func Password() string { return "[REDACTED_PASSWORD]" }

// Anchor возвращает короткий отпечаток refresh-токена (первые 8 hex
// SHA-256): достаточно для корреляции записей журнала одной сессии,
// непригодно для восстановления токена.
func Anchor(token string) string {
	if token == "" {
		return "-"
	}

	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:4])
}
