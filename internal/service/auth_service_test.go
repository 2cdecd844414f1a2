package service

import (
	"context"
	"testing"
	"time"

	"freelance_hub_backend/internal/config"
	"freelance_hub_backend/internal/model"
	"freelance_hub_backend/internal/repository"
	"freelance_hub_backend/internal/testinfra"
	"freelance_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	db := testinfra.NewTestDB(t)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		Name: "Dana", Email: "Dana@Example.test", Password: "correct-horse", Role: model.Freelancer,
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.test", user.Email)
	assert.NotEqual(t, "correct-horse", user.Password)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Dup", Email: "dana@example.test", Password: "another-pass"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	_, err = svc.Login(ctx, LoginRequest{Email: "dana@example.test", Password: "wrong-pass"})
	assert.ErrorIs(t, err, util.ErrInvalidCredential)

	resp, err := svc.Login(ctx, LoginRequest{Email: "DANA@example.test", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotNil(t, resp.User.LastLogin)

	claims, err := util.ParseJWT(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, model.Identity{UserID: user.ID, Role: model.Freelancer}, claims.Identity())

	profile, err := svc.Profile(ctx, claims.Identity())
	require.NoError(t, err)
	assert.Equal(t, "Dana", profile.Name)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Eve", Email: "eve@example.test", Password: "password1", Role: model.Admin,
	})
	assert.True(t, util.IsBadRequest(err))
}

func TestProfileMissingUser(t *testing.T) {
	svc := newAuthService(t)
	_, err := svc.Profile(context.Background(), model.Identity{UserID: 404})
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
