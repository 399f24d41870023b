package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findteam/models"
)

func newAuthFixture(t *testing.T) (*AuthService, *memStore) {
	t.Helper()
	db := setupTestDB(t)
	store := newMemStore()
	cfg := testConfig()
	tokens := NewTokenService(db, store, cfg)
	profiles := NewProfileService(db)
	auth := NewAuthService(db, tokens, NewMailer(cfg), profiles)
	return auth, store
}

func TestRegisterThenVerify(t *testing.T) {
	auth, store := newAuthFixture(t)
	ctx := context.Background()

	resent, err := auth.Register(ctx, RegisterInput{
		Username:          "alice",
		Email:             "alice@example.com",
		Password:          "secret1",
		ConfirmedPassword: "secret1",
	})
	require.NoError(t, err)
	assert.False(t, resent)

	// Not yet verified, so no login.
	_, err = auth.Login("alice@example.com", "secret1")
	assert.ErrorIs(t, err, ErrUnverified)

	token := store.lastKey(PurposeVerify)
	require.NotEmpty(t, token, "verification token stored")

	user, err := auth.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.True(t, user.Verified)

	// Verification provisions the default profile.
	var profile models.Profile
	require.NoError(t, auth.db.First(&profile, "user_id = ?", user.ID).Error)
	assert.Equal(t, "images/default.jpg", profile.ImagePath)
	assert.Equal(t, "alice@example.com", profile.ContactEmail)

	got, err := auth.Login("alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterRejectsBadPasswords(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com",
		Password: "short", ConfirmedPassword: "short",
	})
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = auth.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com",
		Password: "secret1", ConfirmedPassword: "secret2",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, store := newAuthFixture(t)
	ctx := context.Background()

	in := RegisterInput{
		Username: "alice", Email: "alice@example.com",
		Password: "secret1", ConfirmedPassword: "secret1",
	}
	_, err := auth.Register(ctx, in)
	require.NoError(t, err)

	// Same unverified email: the link is resent, no second account.
	resent, err := auth.Register(ctx, in)
	require.NoError(t, err)
	assert.True(t, resent)

	var count int64
	auth.db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count)
	assert.EqualValues(t, 1, count)

	// Verified email: rejected outright.
	token := store.lastKey(PurposeVerify)
	_, err = auth.VerifyEmail(ctx, token)
	require.NoError(t, err)

	_, err = auth.Register(ctx, in)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLoginDoesNotLeakAccounts(t *testing.T) {
	auth, _ := newAuthFixture(t)
	seedUser(t, auth.db, "alice", "alice@example.com", true)

	_, badPassword := auth.Login("alice@example.com", "wrong")
	_, unknownEmail := auth.Login("nobody@example.com", "secret1")

	assert.ErrorIs(t, badPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
}

func TestPasswordRecoveryFlow(t *testing.T) {
	auth, store := newAuthFixture(t)
	ctx := context.Background()
	seedUser(t, auth.db, "alice", "alice@example.com", true)

	require.NoError(t, auth.RecoverPassword(ctx, "alice@example.com"))
	token := store.lastKey(PurposeResetPassword)
	require.NotEmpty(t, token, "reset token stored")

	require.NoError(t, auth.ChangePassword(ctx, token, "newsecret", "newsecret"))

	_, err := auth.Login("alice@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login("alice@example.com", "newsecret")
	require.NoError(t, err)

	// The token was consumed by the first change.
	err = auth.ChangePassword(ctx, token, "again123", "again123")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordRecoveryUnknownEmail(t *testing.T) {
	auth, store := newAuthFixture(t)
	ctx := context.Background()

	// Succeeds without storing anything, so callers cannot probe.
	require.NoError(t, auth.RecoverPassword(ctx, "nobody@example.com"))
	assert.Empty(t, store.lastKey(PurposeResetPassword))
}

func TestChangePasswordValidation(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, auth.ChangePassword(ctx, "tok", "short", "short"), ErrInvalidData)
	assert.ErrorIs(t, auth.ChangePassword(ctx, "tok", "secret1", "secret2"), ErrPasswordMismatch)
	assert.ErrorIs(t, auth.ChangePassword(ctx, "bogus", "secret1", "secret1"), ErrInvalidToken)
}
