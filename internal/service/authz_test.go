package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/storage"
)

func issuePairFor(t *testing.T, svc *Service, claims models.Claims) (string, string) {
	t.Helper()
	pair, err := svc.IssuePair(claims)
	require.NoError(t, err)
	return pair.AccessToken, pair.RefreshToken
}

func TestAuthorize_Plain_OK(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	claims := testClaims()
	access, refresh := issuePairFor(t, svc, claims)

	verdict, err := svc.Authorize(context.Background(), access, refresh, Plain())
	require.NoError(t, err)
	require.True(t, verdict.Authorized)
	require.Empty(t, verdict.Cause)
	require.Empty(t, verdict.RenewedAccessToken)
	require.Equal(t, claims, verdict.Claims)
}

func TestAuthorize_MissingTokens(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	claims := testClaims()
	access, refresh := issuePairFor(t, svc, claims)

	for _, tc := range []struct{ name, access, refresh string }{
		{"no_access", "", refresh},
		{"no_refresh", access, ""},
		{"neither", "", ""},
	} {
		verdict, err := svc.Authorize(context.Background(), tc.access, tc.refresh, Plain())
		require.NoError(t, err, tc.name)
		require.False(t, verdict.Authorized, tc.name)
		require.Equal(t, "Unauthorized", verdict.Cause, tc.name)
	}
}

func TestAuthorize_InvalidAccess(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, refresh := issuePairFor(t, svc, testClaims())

	verdict, err := svc.Authorize(context.Background(), "garbage", refresh, Plain())
	require.NoError(t, err)
	require.False(t, verdict.Authorized)
	require.Equal(t, "invalid token", verdict.Cause)
	require.Empty(t, verdict.RenewedAccessToken)
}

func TestAuthorize_ExpiredAccess_Renews(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	claims := testClaims()
	expiredAccess, err := svc.codec.Issue(claims, -time.Minute)
	require.NoError(t, err)
	refresh, err := svc.codec.Issue(claims, time.Hour)
	require.NoError(t, err)

	verdict, err := svc.Authorize(context.Background(), expiredAccess, refresh, Plain())
	require.NoError(t, err)
	require.True(t, verdict.Authorized)
	require.NotEmpty(t, verdict.RenewedAccessToken)
	require.Equal(t, claims, verdict.Claims)

	// Перевыпущенный access валиден и несёт ту же идентичность.
	renewedClaims, err := svc.codec.Verify(verdict.RenewedAccessToken)
	require.NoError(t, err)
	require.Equal(t, claims, renewedClaims)

	// Повторная авторизация с перевыпущенным токеном идёт без продления.
	again, err := svc.Authorize(context.Background(), verdict.RenewedAccessToken, refresh, Plain())
	require.NoError(t, err)
	require.True(t, again.Authorized)
	require.Empty(t, again.RenewedAccessToken)
}

func TestAuthorize_BothExpired(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	claims := testClaims()
	expiredAccess, err := svc.codec.Issue(claims, -time.Minute)
	require.NoError(t, err)
	expiredRefresh, err := svc.codec.Issue(claims, -time.Minute)
	require.NoError(t, err)

	verdict, err := svc.Authorize(context.Background(), expiredAccess, expiredRefresh, Plain())
	require.NoError(t, err)
	require.False(t, verdict.Authorized)
	require.Equal(t, "Perform login again", verdict.Cause)
	require.Empty(t, verdict.RenewedAccessToken)
}

func TestAuthorize_ExpiredRefresh_ValidAccess(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	claims := testClaims()
	access, err := svc.codec.Issue(claims, time.Hour)
	require.NoError(t, err)
	expiredRefresh, err := svc.codec.Issue(claims, -time.Minute)
	require.NoError(t, err)

	verdict, err := svc.Authorize(context.Background(), access, expiredRefresh, Plain())
	require.NoError(t, err)
	require.False(t, verdict.Authorized)
	require.Equal(t, "Perform login again", verdict.Cause)
}

func TestAuthorize_IncompleteClaims(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	partial := models.Claims{ID: uuid.NewString(), Username: "alice", Role: models.RoleRegular}
	access, err := svc.codec.Issue(partial, time.Hour)
	require.NoError(t, err)
	refresh, err := svc.codec.Issue(partial, time.Hour)
	require.NoError(t, err)

	verdict, err := svc.Authorize(context.Background(), access, refresh, Plain())
	require.NoError(t, err)
	require.False(t, verdict.Authorized)
	require.Equal(t, "Token is missing information", verdict.Cause)
}

func TestAuthorize_MismatchedUsers(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	alice := testClaims()
	bob := models.Claims{
		ID:       uuid.NewString(),
		Username: "bob",
		Email:    "bob@example.com",
		Role:     models.RoleRegular,
	}

	access, err := svc.codec.Issue(alice, time.Hour)
	require.NoError(t, err)
	refresh, err := svc.codec.Issue(bob, time.Hour)
	require.NoError(t, err)

	verdict, err := svc.Authorize(context.Background(), access, refresh, Plain())
	require.NoError(t, err)
	require.False(t, verdict.Authorized)
	require.Equal(t, "Mismatched users", verdict.Cause)
}

func TestAuthorize_SameUser(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	claims := testClaims()
	access, refresh := issuePairFor(t, svc, claims)

	verdict, err := svc.Authorize(context.Background(), access, refresh, SameUser("alice"))
	require.NoError(t, err)
	require.True(t, verdict.Authorized)

	verdict, err = svc.Authorize(context.Background(), access, refresh, SameUser("bob"))
	require.NoError(t, err)
	require.False(t, verdict.Authorized)
	require.Equal(t, "Username does not match with requested one", verdict.Cause)
}

func TestAuthorize_AdminRole(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	regular := testClaims()
	access, refresh := issuePairFor(t, svc, regular)

	verdict, err := svc.Authorize(context.Background(), access, refresh, AdminRole())
	require.NoError(t, err)
	require.False(t, verdict.Authorized)
	require.Equal(t, "User does not have admin role", verdict.Cause)

	admin := regular
	admin.Role = models.RoleAdmin
	access, refresh = issuePairFor(t, svc, admin)

	verdict, err = svc.Authorize(context.Background(), access, refresh, AdminRole())
	require.NoError(t, err)
	require.True(t, verdict.Authorized)
}

func groupWith(emails ...string) *models.Group {
	members := make([]models.GroupMember, 0, len(emails))
	for _, e := range emails {
		members = append(members, models.GroupMember{Email: e, UserID: uuid.New()})
	}
	return &models.Group{ID: uuid.New(), Name: "family", Members: members}
}

func TestAuthorize_GroupMembership(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	claims := testClaims()
	access, refresh := issuePairFor(t, svc, claims)

	st.EXPECT().GroupByName(gomock.Any(), "family").Return(groupWith("alice@example.com"), nil)

	verdict, err := svc.Authorize(context.Background(), access, refresh, GroupMembership("family"))
	require.NoError(t, err)
	require.True(t, verdict.Authorized)
}

func TestAuthorize_GroupMembership_NotMember(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	claims := testClaims()
	access, refresh := issuePairFor(t, svc, claims)

	st.EXPECT().GroupByName(gomock.Any(), "family").Return(groupWith("other@example.com"), nil)

	verdict, err := svc.Authorize(context.Background(), access, refresh, GroupMembership("family"))
	require.NoError(t, err)
	require.False(t, verdict.Authorized)
	require.Equal(t, "User is not part of the group", verdict.Cause)
}

func TestAuthorize_GroupMembership_MissingGroup(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	access, refresh := issuePairFor(t, svc, testClaims())

	st.EXPECT().GroupByName(gomock.Any(), "ghost").Return(nil, storage.ErrNotFound)

	verdict, err := svc.Authorize(context.Background(), access, refresh, GroupMembership("ghost"))
	require.NoError(t, err)
	require.False(t, verdict.Authorized)
	require.Equal(t, "Group does not exist", verdict.Cause)
}

// При отказе на ветке продления перевыпущенный access всё равно
// возвращается: клиент получает рабочий токен вместе с отказом.
func TestAuthorize_RenewalDenied_StillReturnsToken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	claims := testClaims()
	expiredAccess, err := svc.codec.Issue(claims, -time.Minute)
	require.NoError(t, err)
	refresh, err := svc.codec.Issue(claims, time.Hour)
	require.NoError(t, err)

	st.EXPECT().GroupByName(gomock.Any(), "family").Return(groupWith("other@example.com"), nil)

	verdict, err := svc.Authorize(context.Background(), expiredAccess, refresh, GroupMembership("family"))
	require.NoError(t, err)
	require.False(t, verdict.Authorized)
	require.Equal(t, "User is not in the group", verdict.Cause)
	require.NotEmpty(t, verdict.RenewedAccessToken)

	renewedClaims, err := svc.codec.Verify(verdict.RenewedAccessToken)
	require.NoError(t, err)
	require.Equal(t, claims, renewedClaims)
}

// На непросроченном пути refresh проверяется только структурно и на
// согласие идентичности: capability применяется один раз и только к
// claims access-токена. Ожидание GroupByName ровно на один вызов
// упадёт, если refresh будет проверен против capability повторно.
func TestAuthorize_FreshAccess_RefreshNotEvaluated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	accessClaims := testClaims()
	refreshClaims := accessClaims
	refreshClaims.ID = uuid.NewString() // ID не входит в инвариант согласованности.

	access, err := svc.codec.Issue(accessClaims, time.Hour)
	require.NoError(t, err)
	refresh, err := svc.codec.Issue(refreshClaims, time.Hour)
	require.NoError(t, err)

	st.EXPECT().GroupByName(gomock.Any(), "family").
		Return(groupWith("alice@example.com"), nil).
		Times(1)

	verdict, err := svc.Authorize(context.Background(), access, refresh, GroupMembership("family"))
	require.NoError(t, err)
	require.True(t, verdict.Authorized)
	require.Empty(t, verdict.RenewedAccessToken)

	// Claims в вердикте — из access-токена, не из refresh.
	require.Equal(t, accessClaims, verdict.Claims)
}

// Authorize не имеет побочных эффектов в хранилище: повторный вызов
// с теми же токенами даёт тот же вердикт.
func TestAuthorize_Idempotent(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	access, refresh := issuePairFor(t, svc, testClaims())

	first, err := svc.Authorize(context.Background(), access, refresh, Plain())
	require.NoError(t, err)
	second, err := svc.Authorize(context.Background(), access, refresh, Plain())
	require.NoError(t, err)
	require.Equal(t, first, second)
}
