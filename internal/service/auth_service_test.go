package service

import (
	"context"
	"testing"

	"github.com/pawhaven/internal/config"
	"github.com/pawhaven/internal/constants"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT:     config.JWTConfig{SecretKey: "admin-secret-for-tests-0123456789abcdef", ExpireHours: 1},
		UserJWT: config.JWTConfig{SecretKey: "user-secret-for-tests-0123456789abcdef", ExpireHours: 1, RememberMeExpireHours: 48},
		Security: config.SecurityConfig{PasswordPolicy: config.PasswordPolicyConfig{
			MinLength:     8,
			RequireLetter: true,
			RequireNumber: true,
		}},
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	policy := testAuthConfig().Security.PasswordPolicy
	cases := []struct {
		password string
		key      string
	}{
		{"short1", "error.password_min_length"},
		{"12345678", "error.password_require_letter"},
		{"abcdefgh", "error.password_require_number"},
		{"goodpass1", ""},
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.key == "" {
			assert.NoError(t, err, tc.password)
			continue
		}
		require.ErrorIs(t, err, ErrWeakPassword, tc.password)
		assert.Equal(t, tc.key, err.(passwordPolicyError).Key())
	}
	assert.NoError(t, validatePassword(config.PasswordPolicyConfig{}, "x"))
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Ama@Example.TEST ")
	require.NoError(t, err)
	assert.Equal(t, "ama@example.test", got)

	for _, bad := range []string{"", "not-an-email", "Ama <ama@example.test>"} {
		_, err := NormalizeEmail(bad)
		assert.ErrorIs(t, err, ErrInvalidEmail, bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestUserRegisterLoginAndRevocation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewUserAuthService(testAuthConfig(), repository.NewUserRepository(db), nil)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "Ama@Example.test", Password: "puppies123"})
	require.NoError(t, err)
	assert.Equal(t, "ama@example.test", registered.User.Email)
	assert.Equal(t, "ama", registered.User.DisplayName)
	assert.Equal(t, constants.UserStatusActive, registered.User.Status)

	_, err = svc.Register(ctx, RegisterInput{Email: "ama@example.test", Password: "puppies123"})
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = svc.Login(ctx, "ama@example.test", "wrongpass1", false)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	login, err := svc.Login(ctx, "AMA@example.test", "puppies123", true)
	require.NoError(t, err)
	claims, err := svc.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.True(t, login.ExpiresAt.After(registered.ExpiresAt), "remember me extends expiry")

	require.NoError(t, svc.ChangePassword(ctx, registered.User.ID, "puppies123", "kittens456"))
	_, err = svc.Authenticate(ctx, login.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	assert.ErrorIs(t, svc.ChangePassword(ctx, registered.User.ID, "puppies123", "another789"), ErrInvalidPassword)
}

func TestUserAuthenticateRejectsDisabledAndForeignTokens(t *testing.T) {
	db := setupServiceTestDB(t)
	cfg := testAuthConfig()
	svc := NewUserAuthService(cfg, repository.NewUserRepository(db), nil)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{Email: "kofi@example.test", Password: "puppies123"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", result.User.ID).Update("status", constants.UserStatusDisabled).Error)
	_, err = svc.Authenticate(ctx, result.Token)
	assert.ErrorIs(t, err, ErrUserDisabled)

	_, err = svc.Login(ctx, "kofi@example.test", "puppies123", false)
	assert.ErrorIs(t, err, ErrUserDisabled)

	admins := NewAuthService(cfg, repository.NewAdminRepository(db), nil)
	_, _, err = admins.Authenticate(ctx, result.Token)
	assert.ErrorIs(t, err, ErrInvalidToken, "user token must not pass admin auth")

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewUserAuthService(testAuthConfig(), repository.NewUserRepository(db), nil)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "weak@example.test", Password: "abc"})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestAdminLoginAndChangePassword(t *testing.T) {
	db := setupServiceTestDB(t)
	repo := repository.NewAdminRepository(db)
	hash, err := HashPassword("admin-pass-1")
	require.NoError(t, err)
	require.NoError(t, repo.Create(&models.Admin{Username: "root", PasswordHash: hash, IsSuper: true}))

	svc := NewAuthService(testAuthConfig(), repo, nil)
	ctx := context.Background()

	_, _, _, err = svc.Login(ctx, "root", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	admin, token, _, err := svc.Login(ctx, " root ", "admin-pass-1")
	require.NoError(t, err)
	require.NotNil(t, admin.LastLoginAt)

	claims, state, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
	assert.True(t, state.IsSuper)

	require.NoError(t, svc.ChangePassword(ctx, admin.ID, "admin-pass-1", "admin-pass-2"))
	_, _, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestCaptchaVerify(t *testing.T) {
	disabled := NewCaptchaService(config.CaptchaConfig{})
	assert.NoError(t, disabled.Verify("", ""))

	svc := NewCaptchaService(config.CaptchaConfig{Enabled: true, Length: 4})
	challenge, err := svc.Generate()
	require.NoError(t, err)
	require.NotEmpty(t, challenge.CaptchaID)
	assert.Contains(t, challenge.ImageBase64, "data:image/png;base64,")

	answer := svc.store.Get(challenge.CaptchaID, false)
	require.Len(t, answer, 4)

	assert.ErrorIs(t, svc.Verify(challenge.CaptchaID, ""), ErrCaptchaRequired)
	assert.ErrorIs(t, svc.Verify(challenge.CaptchaID, "zzzz"), ErrCaptchaInvalid)

	second, err := svc.Generate()
	require.NoError(t, err)
	answer = svc.store.Get(second.CaptchaID, false)
	assert.NoError(t, svc.Verify(second.CaptchaID, answer))
	assert.ErrorIs(t, svc.Verify(second.CaptchaID, answer), ErrCaptchaInvalid, "answers are single use")
}
