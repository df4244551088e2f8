package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-finance-tracker/internal/cache"
	"github.com/pribylovaa/go-finance-tracker/internal/models"
	"github.com/pribylovaa/go-finance-tracker/internal/storage"
	"github.com/pribylovaa/go-finance-tracker/mocks"
)

func newSvcWithCache(t *testing.T) (*Service, *mocks.MockStorage, *mocks.MockGroupCache, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	gc := mocks.NewMockGroupCache(ctrl)
	svc := New(st, gc, testCfg())
	return svc, st, gc, ctrl
}

func TestCreateGroup_CreatorIsFirstMember(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	creator := testClaims()
	st.EXPECT().SaveGroup(gomock.Any(), gomock.Any()).Return(nil)

	group, err := svc.CreateGroup(context.Background(), "family", creator)
	require.NoError(t, err)
	require.Equal(t, "family", group.Name)
	require.Equal(t, []string{creator.Email}, group.MemberEmails())
}

func TestCreateGroup_DuplicateName(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveGroup(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)

	_, err := svc.CreateGroup(context.Background(), "family", testClaims())
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGroupMemberEmails_CacheHit(t *testing.T) {
	t.Parallel()

	svc, _, gc, ctrl := newSvcWithCache(t)
	defer ctrl.Finish()

	gc.EXPECT().Members(gomock.Any(), "family").Return([]string{"a@example.com"}, nil)

	emails, err := svc.GroupMemberEmails(context.Background(), "family")
	require.NoError(t, err)
	require.Equal(t, []string{"a@example.com"}, emails)
}

func TestGroupMemberEmails_CacheMiss_WarmsCache(t *testing.T) {
	t.Parallel()

	svc, st, gc, ctrl := newSvcWithCache(t)
	defer ctrl.Finish()

	group := groupWith("a@example.com", "b@example.com")

	gc.EXPECT().Members(gomock.Any(), "family").Return(nil, cache.ErrCacheMiss)
	st.EXPECT().GroupByName(gomock.Any(), "family").Return(group, nil)
	gc.EXPECT().SetMembers(gomock.Any(), "family", group.MemberEmails()).Return(nil)

	emails, err := svc.GroupMemberEmails(context.Background(), "family")
	require.NoError(t, err)
	require.Equal(t, group.MemberEmails(), emails)
}

// Сбой Redis не валит запрос: лукап уходит в хранилище.
func TestGroupMemberEmails_CacheFailure_FallsBack(t *testing.T) {
	t.Parallel()

	svc, st, gc, ctrl := newSvcWithCache(t)
	defer ctrl.Finish()

	group := groupWith("a@example.com")

	gc.EXPECT().Members(gomock.Any(), "family").Return(nil, errors.New("redis down"))
	st.EXPECT().GroupByName(gomock.Any(), "family").Return(group, nil)
	gc.EXPECT().SetMembers(gomock.Any(), "family", gomock.Any()).Return(errors.New("redis down"))

	emails, err := svc.GroupMemberEmails(context.Background(), "family")
	require.NoError(t, err)
	require.Equal(t, group.MemberEmails(), emails)
}

func TestAddGroupMember_InvalidatesCache(t *testing.T) {
	t.Parallel()

	svc, st, gc, ctrl := newSvcWithCache(t)
	defer ctrl.Finish()

	user := storedUser(t, "123")
	st.EXPECT().UserByEmail(gomock.Any(), user.Email).Return(user, nil)
	st.EXPECT().AddGroupMember(gomock.Any(), "family", models.GroupMember{Email: user.Email, UserID: user.ID}).Return(nil)
	gc.EXPECT().Invalidate(gomock.Any(), "family").Return(nil)

	require.NoError(t, svc.AddGroupMember(context.Background(), "family", user.Email))
}

func TestAddGroupMember_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").Return(nil, storage.ErrNotFound)

	err := svc.AddGroupMember(context.Background(), "family", "ghost@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestRemoveGroupMember_InvalidatesCache(t *testing.T) {
	t.Parallel()

	svc, st, gc, ctrl := newSvcWithCache(t)
	defer ctrl.Finish()

	st.EXPECT().RemoveGroupMember(gomock.Any(), "family", "a@example.com").Return(nil)
	gc.EXPECT().Invalidate(gomock.Any(), "family").Return(nil)

	require.NoError(t, svc.RemoveGroupMember(context.Background(), "family", "a@example.com"))
}

func TestDeleteGroup_NotFound(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().DeleteGroup(gomock.Any(), "ghost").Return(storage.ErrNotFound)

	err := svc.DeleteGroup(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrGroupNotFound)
}

func TestGroupTransactions(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	group := groupWith("a@example.com", "b@example.com")
	want := []models.Transaction{
		{ID: uuid.New(), UserID: group.Members[0].UserID, Amount: -1500, Currency: "EUR"},
		{ID: uuid.New(), UserID: group.Members[1].UserID, Amount: 20000, Currency: "EUR"},
	}

	st.EXPECT().GroupByName(gomock.Any(), "family").Return(group, nil)
	st.EXPECT().TransactionsByUsers(gomock.Any(), group.MemberIDs()).Return(want, nil)

	got, err := svc.GroupTransactions(context.Background(), "family")
	require.NoError(t, err)
	require.Equal(t, want, got)
}
