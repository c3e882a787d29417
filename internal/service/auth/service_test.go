package auth_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookorg/bookstore-service/internal/errs"
	"github.com/bookorg/bookstore-service/internal/model"
	repo_mocks "github.com/bookorg/bookstore-service/internal/repository/mocks"
	authsvc "github.com/bookorg/bookstore-service/internal/service/auth"
	"github.com/bookorg/bookstore-service/pkg/auth"
)

const testSecret = "c3VwZXItc2VjcmV0LXNpZ25pbmcta2V5LTEyMzQ1Njc=" // base64

func newService(t *testing.T) (*authsvc.Service, *repo_mocks.MockUserRepository, *auth.TokenManager) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tm, err := auth.NewTokenManager(auth.Config{Secret: testSecret, TokenTTL: 3600000})
	require.NoError(t, err)

	repo := repo_mocks.NewMockUserRepository(ctrl)
	return authsvc.NewService(repo, tm, zap.NewExample().Named("test")), repo, tm
}

func TestService_RegisterLogin(t *testing.T) {
	t.Parallel()
	svc, repo, tm := newService(t)

	ctx := context.Background()
	var stored model.User

	repo.EXPECT().GetByUsername(ctx, "alice").Return(model.User{}, errs.ErrUserNotFound)
	repo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user model.User) error {
			stored = user
			return nil
		})
	repo.EXPECT().CreateRole(ctx, gomock.Any(), model.RoleUser).
		DoAndReturn(func(_ context.Context, id uuid.UUID, _ string) error {
			require.Equal(t, stored.ID, id)
			return nil
		})
	// Register re-fetches the principal after the write.
	repo.EXPECT().GetByUsername(ctx, "alice").
		DoAndReturn(func(context.Context, string) (model.User, error) { return stored, nil })
	repo.EXPECT().GetRoles(ctx, gomock.Any()).Return([]string{model.RoleUser}, nil)

	principal, err := svc.Register(ctx, "alice", "s3cret", model.RoleUser)
	require.NoError(t, err)
	require.Equal(t, "alice", principal.Username)
	require.Equal(t, []string{model.RoleUser}, principal.Authorities)

	// The stored password is a bcrypt hash, never the plaintext.
	require.NotEqual(t, "s3cret", stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")))

	repo.EXPECT().GetByUsername(ctx, "alice").Return(stored, nil)
	repo.EXPECT().GetRoles(ctx, stored.ID).Return([]string{model.RoleUser}, nil)

	token, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, []string{model.RoleUser}, claims.Roles)
}

func TestService_Register_Conflict(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)

	ctx := context.Background()
	repo.EXPECT().GetByUsername(ctx, "alice").Return(model.User{Username: "alice"}, nil)

	_, err := svc.Register(ctx, "alice", "s3cret", model.RoleUser)
	require.ErrorIs(t, err, errs.ErrUserConflict)
}

func TestService_Register_BlankFields(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)

	ctx := context.Background()

	_, err := svc.Register(ctx, "  ", "s3cret", model.RoleUser)
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Register(ctx, "alice", "", model.RoleUser)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)

	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := model.User{ID: uuid.New(), Username: "alice", Password: string(hash)}
	repo.EXPECT().GetByUsername(ctx, "alice").Return(user, nil)
	repo.EXPECT().GetRoles(ctx, user.ID).Return([]string{model.RoleUser}, nil)

	_, err = svc.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, errs.ErrAuthFailed)
}

func TestService_Login_UnknownUser(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newService(t)

	ctx := context.Background()
	repo.EXPECT().GetByUsername(ctx, "ghost").Return(model.User{}, errs.ErrUserNotFound)

	_, err := svc.Login(ctx, "ghost", "s3cret")
	require.ErrorIs(t, err, errs.ErrAuthFailed)
}
