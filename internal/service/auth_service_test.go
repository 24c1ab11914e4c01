package service

import (
	"testing"
	"time"

	"poinku/config"
	"poinku/internal/auth"
	"poinku/internal/domain"
	"poinku/internal/models"
	"poinku/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			AccessExpiry:  time.Hour,
			RefreshExpiry: 24 * time.Hour,
			Issuer:        "poinku-test",
		},
	}
	return NewAuthService(cfg, db, repository.NewUserRepository(db))
}

func TestRegisterCreatesWallets(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)

	u, access, refresh, err := svc.Register("alice", "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	require.Equal(t, domain.RoleUser, u.Role)
	require.EqualValues(t, 0, u.Points)

	var wallets []models.Wallet
	require.NoError(t, db.Where("user_id = ?", u.ID).Order("currency").Find(&wallets).Error)
	require.Len(t, wallets, 2)
	require.Equal(t, "IDR", wallets[0].Currency)
	require.Equal(t, "USDT", wallets[1].Currency)

	claims, err := auth.ParseAccessToken(&config.JWTConfig{AccessSecret: "test-access-secret"}, access)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)
	require.Equal(t, "alice", claims.Username)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)

	_, _, _, err := svc.Register("alice", "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, _, _, err = svc.Register("other", "alice@example.com", "hunter2hunter2")
	require.ErrorIs(t, err, ErrEmailExists)
	_, _, _, err = svc.Register("alice", "fresh@example.com", "hunter2hunter2")
	require.ErrorIs(t, err, ErrUsernameExists)
}

func TestLogin(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)

	u, _, _, err := svc.Register("bob", "bob@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, _, _, err = svc.Login("bob@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCreds)
	_, _, _, err = svc.Login("ghost@example.com", "hunter2hunter2")
	require.ErrorIs(t, err, ErrInvalidCreds)

	got, access, _, err := svc.Login("bob@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.NotEmpty(t, access)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", u.ID).Update("is_banned", true).Error)
	_, _, _, err = svc.Login("bob@example.com", "hunter2hunter2")
	require.ErrorIs(t, err, domain.ErrBanned)
}

func TestLoginWithGoogleLinksByEmail(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)

	existing, _, _, err := svc.Register("carol", "carol@example.com", "hunter2hunter2")
	require.NoError(t, err)

	got, _, _, err := svc.LoginWithGoogle("google-123", "carol@example.com", "Carol", "UCcarol")
	require.NoError(t, err)
	require.Equal(t, existing.ID, got.ID)

	var u models.User
	require.NoError(t, db.First(&u, existing.ID).Error)
	require.NotNil(t, u.GoogleID)
	require.Equal(t, "google-123", *u.GoogleID)
	require.NotNil(t, u.ChannelID)
	require.Equal(t, "UCcarol", *u.ChannelID)

	// Subsequent sign-ins resolve by Google ID.
	again, _, _, err := svc.LoginWithGoogle("google-123", "other@example.com", "", "")
	require.NoError(t, err)
	require.Equal(t, existing.ID, again.ID)
}

func TestLoginWithGoogleRegistersNewAccount(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)

	u, _, _, err := svc.LoginWithGoogle("google-456", "dave@example.com", "Dave Streamer", "UCdave")
	require.NoError(t, err)
	require.Equal(t, "dave_streamer", u.Username)

	var wallets int64
	require.NoError(t, db.Model(&models.Wallet{}).Where("user_id = ?", u.ID).Count(&wallets).Error)
	require.EqualValues(t, 2, wallets)
}

func TestLinkGoogleConflict(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)

	first, _, _, err := svc.Register("erin", "erin@example.com", "hunter2hunter2")
	require.NoError(t, err)
	second, _, _, err := svc.Register("frank", "frank@example.com", "hunter2hunter2")
	require.NoError(t, err)

	require.NoError(t, svc.LinkGoogle(first.ID, "google-789", "UCerin"))
	require.ErrorIs(t, svc.LinkGoogle(second.ID, "google-789", ""), ErrGoogleIDTaken)
}

func TestChangePasswordAndRefresh(t *testing.T) {
	db := testDB(t)
	svc := newAuthService(db)

	u, _, refresh, err := svc.Register("grace", "grace@example.com", "hunter2hunter2")
	require.NoError(t, err)

	require.ErrorIs(t, svc.ChangePassword(u.ID, "wrong", "newpassword1"), ErrInvalidCreds)
	require.NoError(t, svc.ChangePassword(u.ID, "hunter2hunter2", "newpassword1"))

	_, _, _, err = svc.Login("grace@example.com", "hunter2hunter2")
	require.ErrorIs(t, err, ErrInvalidCreds)
	_, _, _, err = svc.Login("grace@example.com", "newpassword1")
	require.NoError(t, err)

	access, next, err := svc.RefreshToken(refresh)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, next)

	_, _, err = svc.RefreshToken("not-a-token")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}
