package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"poinku/config"
	"poinku/internal/auth"
	"poinku/internal/domain"
	"poinku/internal/models"
	"poinku/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists    = errors.New("email already registered")
	ErrUsernameExists = errors.New("username already taken")
	ErrInvalidCreds   = errors.New("invalid email or password")
	ErrGoogleIDTaken  = errors.New("google account already linked to another user")
)

type AuthService struct {
	cfg      *config.Config
	db       *gorm.DB
	userRepo *repository.UserRepository
}

func NewAuthService(cfg *config.Config, db *gorm.DB, userRepo *repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, db: db, userRepo: userRepo}
}

// createWithWallets inserts the user plus one wallet per supported currency.
func (s *AuthService) createWithWallets(u *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		for _, currency := range domain.WalletCurrencies {
			if err := tx.Create(&models.Wallet{UserID: u.ID, Currency: currency}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *AuthService) Register(username, email, password string) (*models.User, string, string, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, "", "", ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, "", "", ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.createWithWallets(u); err != nil {
		return nil, "", "", err
	}
	access, refresh, err := s.tokens(u)
	return u, access, refresh, err
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if u.PasswordHash == "" {
		return nil, "", "", ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	if u.IsBanned {
		return nil, "", "", domain.ErrBanned
	}
	access, refresh, err := s.tokens(u)
	return u, access, refresh, err
}

// LoginWithGoogle finds the user by Google ID, falls back to linking by
// email, and registers a new account otherwise. The YouTube channel id
// captured during consent links the account to chat-activity rewards.
func (s *AuthService) LoginWithGoogle(googleID, email, name, channelID string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByGoogleID(googleID)
	if err == nil {
		if u.IsBanned {
			return nil, "", "", domain.ErrBanned
		}
		access, refresh, err := s.tokens(u)
		return u, access, refresh, err
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	if existing, err := s.userRepo.GetByEmail(email); err == nil {
		if err := s.link(existing, googleID, channelID); err != nil {
			return nil, "", "", err
		}
		access, refresh, err := s.tokens(existing)
		return existing, access, refresh, err
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	username := strings.Split(email, "@")[0]
	if name != "" {
		username = strings.ReplaceAll(strings.ToLower(name), " ", "_")
	}
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		username = fmt.Sprintf("%s_%d", username, time.Now().UnixNano()%100000)
	}
	u = &models.User{
		Username: username,
		Email:    email,
		Role:     domain.RoleUser,
	}
	gid := googleID
	u.GoogleID = &gid
	if channelID != "" {
		cid := channelID
		u.ChannelID = &cid
	}
	if err := s.createWithWallets(u); err != nil {
		return nil, "", "", err
	}
	access, refresh, err := s.tokens(u)
	return u, access, refresh, err
}

// LinkGoogle attaches a Google identity (and its YouTube channel) to an
// already authenticated account.
func (s *AuthService) LinkGoogle(userID uint, googleID, channelID string) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	return s.link(u, googleID, channelID)
}

func (s *AuthService) link(u *models.User, googleID, channelID string) error {
	other, err := s.userRepo.GetByGoogleID(googleID)
	if err == nil && other.ID != u.ID {
		return ErrGoogleIDTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	gid := googleID
	u.GoogleID = &gid
	if channelID != "" {
		cid := channelID
		u.ChannelID = &cid
	}
	return s.userRepo.Update(u)
}

func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrInvalidCreds
	}
	if u.PasswordHash == "" {
		return errors.New("account uses Google sign-in; no password set")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.userRepo.Update(u)
}

func (s *AuthService) RefreshToken(refreshToken string) (string, string, error) {
	token, err := jwt.ParseWithClaims(refreshToken, &jwt.RegisteredClaims{}, func(_ *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.RefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", auth.ErrInvalidToken
	}
	claims := token.Claims.(*jwt.RegisteredClaims)
	var userID uint
	fmt.Sscanf(claims.Subject, "%d", &userID)
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", "", err
	}
	if u.IsBanned {
		return "", "", domain.ErrBanned
	}
	return s.tokens(u)
}

func (s *AuthService) tokens(u *models.User) (string, string, error) {
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Username, u.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return access, "", err
	}
	return access, refresh, nil
}
