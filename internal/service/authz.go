package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/pribylovaa/go-finance-tracker/internal/models"
)

// CapabilityKind — вид проверки прав доступа.
type CapabilityKind int

const (
	// CapabilityPlain — достаточно валидной пары токенов.
	CapabilityPlain CapabilityKind = iota
	// CapabilitySameUser — subject токена должен совпадать с запрошенным username.
	CapabilitySameUser
	// CapabilityAdminRole — требуется роль Admin.
	CapabilityAdminRole
	// CapabilityGroupMembership — email из токена должен состоять в группе.
	CapabilityGroupMembership
)

// Capability описывает требование авторизации для конкретного запроса.
type Capability struct {
	Kind     CapabilityKind
	Username string
	Group    string
}

// Plain — проверка без дополнительных требований.
func Plain() Capability {
	return Capability{Kind: CapabilityPlain}
}

// SameUser требует совпадения username из токена с запрошенным.
func SameUser(username string) Capability {
	return Capability{Kind: CapabilitySameUser, Username: username}
}

// AdminRole требует роль Admin.
func AdminRole() Capability {
	return Capability{Kind: CapabilityAdminRole}
}

// GroupMembership требует членства email из токена в группе.
func GroupMembership(group string) Capability {
	return Capability{Kind: CapabilityGroupMembership, Group: group}
}

// Verdict — результат авторизации запроса.
// RenewedAccessToken непуст, если access-токен был прозрачно
// перевыпущен; он устанавливается ДО проверки capability и должен
// попасть в ответ даже при отказе в правах.
type Verdict struct {
	Authorized         bool
	Cause              string
	RenewedAccessToken string
	Claims             models.Claims
}

// Тексты причин отказа, уходящие клиенту как есть.
const (
	causeUnauthorized    = "Unauthorized"
	causeInvalidToken    = "invalid token"
	causeLoginAgain      = "Perform login again"
	causeMissingInfo     = "Token is missing information"
	causeMismatchedUsers = "Mismatched users"
	causeUsernameDiffers = "Username does not match with requested one"
	causeNotAdmin        = "User does not have admin role"
	causeNotInGroup      = "User is not part of the group"
	causeNotInGroupFresh = "User is not in the group"
	causeNoGroup         = "Group does not exist"
)

func deny(cause string) Verdict {
	return Verdict{Authorized: false, Cause: cause}
}

// Authorize проверяет пару токенов против требуемой capability.
//
// Оба токена обязательны. Валидный access-токен авторизует запрос по
// своим claims; просроченный access при живом refresh прозрачно
// перевыпускается — проверка прав в этом случае идёт по claims
// refresh-токена, а новый access возвращается в Verdict независимо
// от исхода проверки. Просроченный refresh требует нового входа.
func (s *Service) Authorize(ctx context.Context, accessToken, refreshToken string, cap Capability) (Verdict, error) {
	const op = "service/authz/Authorize"

	if accessToken == "" || refreshToken == "" {
		return deny(causeUnauthorized), nil
	}

	accessClaims, accessErr := s.codec.Verify(accessToken)

	if accessErr != nil && errors.Is(accessErr, ErrTokenExpired) {
		return s.authorizeRenewing(ctx, op, refreshToken, cap)
	}

	if accessErr != nil {
		return deny(causeInvalidToken), nil
	}

	refreshClaims, refreshErr := s.codec.Verify(refreshToken)
	if refreshErr != nil {
		if errors.Is(refreshErr, ErrTokenExpired) {
			return deny(causeLoginAgain), nil
		}

		return deny(causeInvalidToken), nil
	}

	if !accessClaims.Complete() || !refreshClaims.Complete() {
		return deny(causeMissingInfo), nil
	}

	if !accessClaims.SameIdentity(refreshClaims) {
		return deny(causeMismatchedUsers), nil
	}

	ok, cause, err := s.evaluate(ctx, cap, accessClaims, false)
	if err != nil {
		return Verdict{}, fmt.Errorf("%s: %w", op, err)
	}

	if !ok {
		return deny(cause), nil
	}

	return Verdict{Authorized: true, Claims: accessClaims}, nil
}

// authorizeRenewing обрабатывает ветку с просроченным access-токеном:
// refresh становится единственным источником идентичности, по нему
// выпускается новый access.
func (s *Service) authorizeRenewing(ctx context.Context, op, refreshToken string, cap Capability) (Verdict, error) {
	refreshClaims, refreshErr := s.codec.Verify(refreshToken)
	if refreshErr != nil {
		if errors.Is(refreshErr, ErrTokenExpired) {
			return deny(causeLoginAgain), nil
		}

		return deny(causeInvalidToken), nil
	}

	if !refreshClaims.Complete() {
		return deny(causeMissingInfo), nil
	}

	renewed, err := s.codec.Issue(refreshClaims, s.cfg.AccessTokenTTL)
	if err != nil {
		return Verdict{}, fmt.Errorf("%s: %w", op, err)
	}

	ok, cause, err := s.evaluate(ctx, cap, refreshClaims, true)
	if err != nil {
		return Verdict{}, fmt.Errorf("%s: %w", op, err)
	}

	verdict := Verdict{
		Authorized:         ok,
		RenewedAccessToken: renewed,
		Claims:             refreshClaims,
	}
	if !ok {
		verdict.Cause = cause
		verdict.Claims = models.Claims{}
	}

	return verdict, nil
}

// evaluate применяет capability к claims. Формулировка отказа в
// членстве различается для свежевыпущенного access-токена.
func (s *Service) evaluate(ctx context.Context, cap Capability, claims models.Claims, renewed bool) (bool, string, error) {
	switch cap.Kind {
	case CapabilityPlain:
		return true, "", nil

	case CapabilitySameUser:
		if claims.Username != cap.Username {
			return false, causeUsernameDiffers, nil
		}
		return true, "", nil

	case CapabilityAdminRole:
		if claims.Role != models.RoleAdmin {
			return false, causeNotAdmin, nil
		}
		return true, "", nil

	case CapabilityGroupMembership:
		emails, err := s.GroupMemberEmails(ctx, cap.Group)
		if err != nil {
			if errors.Is(err, ErrGroupNotFound) {
				return false, causeNoGroup, nil
			}

			return false, "", err
		}

		if !slices.Contains(emails, claims.Email) {
			if renewed {
				return false, causeNotInGroupFresh, nil
			}
			return false, causeNotInGroup, nil
		}
		return true, "", nil

	default:
		return false, causeUnauthorized, nil
	}
}
