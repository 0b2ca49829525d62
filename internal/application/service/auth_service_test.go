package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/mocks"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/utils"
)

func newUser(t *testing.T, password string, role enum.UserRole, active bool) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{
		ID:       uuid.New(),
		Name:     "Jane Manager",
		Username: "jane",
		Password: hash,
		Role:     role,
		IsActive: active,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	t.Run("issues tokens and stamps the login time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		user := newUser(t, "s3cret!", enum.UserRoleManager, true)

		repo.EXPECT().GetByUsername(gomock.Any(), "jane").Return(user, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *entity.User) error {
			assert.NotNil(t, u.LastLoginAt)
			return nil
		})

		out, err := NewAuthService(repo, jwtManager).Login(ctx, &LoginInput{Username: " jane ", Password: "s3cret!"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, out.User.ID)

		claims, err := jwtManager.ValidateAccessToken(out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "Manager", claims.Role)
		assert.ElementsMatch(t, enum.UserRoleManager.Permissions(), claims.Permissions)

		refreshed, err := jwtManager.ValidateRefreshToken(out.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, refreshed)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetByUsername(gomock.Any(), "jane").Return(newUser(t, "s3cret!", enum.UserRoleUser, true), nil)

		_, err := NewAuthService(repo, jwtManager).Login(ctx, &LoginInput{Username: "jane", Password: "nope"})
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)

		_, err := NewAuthService(repo, jwtManager).Login(ctx, &LoginInput{Username: "ghost", Password: "x"})
		requireStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("disabled account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetByUsername(gomock.Any(), "jane").Return(newUser(t, "s3cret!", enum.UserRoleUser, false), nil)

		_, err := NewAuthService(repo, jwtManager).Login(ctx, &LoginInput{Username: "jane", Password: "s3cret!"})
		requireStatus(t, err, http.StatusForbidden)
	})
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	access, err := jwtManager.GenerateAccessToken(uuid.New(), "jane", "User", nil)
	require.NoError(t, err)

	_, err = NewAuthService(repo, jwtManager).RefreshToken(context.Background(), access)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(repo, utils.NewJWTManager("test-secret", time.Hour, time.Hour))
	user := newUser(t, "old-pass", enum.UserRoleUser, true)

	repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil).Times(2)
	repo.EXPECT().Update(gomock.Any(), user).Return(nil)

	err := svc.ChangePassword(context.Background(), &ChangePasswordInput{UserID: user.ID, CurrentPassword: "wrong", NewPassword: "new-pass"})
	requireStatus(t, err, http.StatusUnprocessableEntity)

	require.NoError(t, svc.ChangePassword(context.Background(), &ChangePasswordInput{UserID: user.ID, CurrentPassword: "old-pass", NewPassword: "new-pass"}))
	assert.True(t, utils.CheckPasswordHash("new-pass", user.Password))
}

func TestUserServiceProtectsTheCaller(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	svc := NewUserService(repo)

	admin := newUser(t, "pw", enum.UserRoleAdmin, true)
	repo.EXPECT().GetByID(gomock.Any(), admin.ID).Return(admin, nil).AnyTimes()

	demote := enum.UserRoleUser
	_, err := svc.UpdateUser(ctx, admin.ID, &UpdateUserInput{ID: admin.ID, Role: &demote})
	requireStatus(t, err, http.StatusConflict)

	disable := false
	_, err = svc.UpdateUser(ctx, admin.ID, &UpdateUserInput{ID: admin.ID, IsActive: &disable})
	requireStatus(t, err, http.StatusConflict)

	err = svc.DeleteUser(ctx, admin.ID, admin.ID)
	requireStatus(t, err, http.StatusConflict)

	other := newUser(t, "pw", enum.UserRoleUser, true)
	repo.EXPECT().GetByID(gomock.Any(), other.ID).Return(other, nil)
	repo.EXPECT().Delete(gomock.Any(), other.ID).Return(nil)
	require.NoError(t, svc.DeleteUser(ctx, admin.ID, other.ID))
}
