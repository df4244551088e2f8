package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
)

// Ошибки проверки токенов.
var (
	// ErrTokenExpired — подпись корректна, но срок действия истёк.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid — токен не разбирается или подпись не сходится.
	ErrTokenInvalid = errors.New("token invalid")
)

// Codec подписывает и проверяет JWT-токены сервиса (HS256).
type Codec struct {
	secret []byte
}

// NewCodec создаёт кодек с симметричным секретом подписи.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// tokenClaims — полезная нагрузка токена: идентичность пользователя
// поверх стандартных полей sub/exp/iat.
type tokenClaims struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue выпускает токен с заданным сроком жизни.
func (c *Codec) Issue(claims models.Claims, ttl time.Duration) (string, error) {
	const op = "service/token/Issue"

	now := time.Now().UTC()
	tc := tokenClaims{
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// Verify проверяет подпись и срок токена и возвращает его claims.
// Истёкший токен различим от прочих дефектов: ErrTokenExpired против
// ErrTokenInvalid. Claims просроченного токена тоже возвращаются —
// они нужны для прозрачного продления access-токена.
func (c *Codec) Verify(token string) (models.Claims, error) {
	const op = "service/token/Verify"

	var tc tokenClaims
	_, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	claims := models.Claims{
		ID:       tc.Subject,
		Username: tc.Username,
		Email:    tc.Email,
		Role:     tc.Role,
	}

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return claims, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return models.Claims{}, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	}

	return claims, nil
}

// IssuePair выпускает пару access/refresh с одинаковой полезной
// нагрузкой и разными сроками жизни.
func (s *Service) IssuePair(claims models.Claims) (models.TokenPair, error) {
	const op = "service/token/IssuePair"

	access, err := s.codec.Issue(claims, s.cfg.AccessTokenTTL)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	refresh, err := s.codec.Issue(claims, s.cfg.RefreshTokenTTL)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.TokenPair{
		AccessToken:     access,
		RefreshToken:    refresh,
		AccessExpiresAt: time.Now().UTC().Add(s.cfg.AccessTokenTTL),
	}, nil
}
