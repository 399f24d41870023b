// services/token_service.go - Access/refresh JWTs and one-time email tokens
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"findteam/config"
	"findteam/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Purposes namespace the keys of one-time tokens in the store.
const (
	PurposeVerify        = "verify"
	PurposeResetPassword = "reset"
)

// TokenService issues and validates the session tokens and the one-time
// email tokens. Constructed explicitly at startup; the store client is
// injected rather than held as package state.
type TokenService struct {
	db    *gorm.DB
	store TokenStore

	secret       []byte
	accessTTL    time.Duration
	refreshTTL   time.Duration
	ephemeralTTL time.Duration

	accessCookie  string
	refreshCookie string
}

func NewTokenService(db *gorm.DB, store TokenStore, cfg *config.Config) *TokenService {
	return &TokenService{
		db:            db,
		store:         store,
		secret:        []byte(cfg.JWTSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		ephemeralTTL:  cfg.EphemeralTokenTTL,
		accessCookie:  cfg.AccessCookieName,
		refreshCookie: cfg.RefreshCookieName,
	}
}

func (s *TokenService) AccessCookieName() string  { return s.accessCookie }
func (s *TokenService) RefreshCookieName() string { return s.refreshCookie }

// Issue signs a token of the given kind and sets it as an HTTP-only
// cookie on the response.
func (s *TokenService) Issue(c *fiber.Ctx, user *models.User, kind TokenKind) (string, error) {
	ttl := s.accessTTL
	name := s.accessCookie
	if kind == TokenKindRefresh {
		ttl = s.refreshTTL
		name = s.refreshCookie
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"kind":  string(kind),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    signed,
		Expires:  now.Add(ttl),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return signed, nil
}

// IssuePair sets both the access and the refresh cookie. Refresh uses
// this too: the old refresh token is replaced, not blacklisted.
func (s *TokenService) IssuePair(c *fiber.Ctx, user *models.User) error {
	if _, err := s.Issue(c, user, TokenKindAccess); err != nil {
		return err
	}
	_, err := s.Issue(c, user, TokenKindRefresh)
	return err
}

// Validate checks signature, expiry and kind, then resolves the token
// to a live, verified user.
func (s *TokenService) Validate(tokenString string, kind TokenKind) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if tokenKind, _ := claims["kind"].(string); tokenKind != string(kind) {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserGone
		}
		return nil, err
	}
	if !user.Verified {
		return nil, ErrUnverified
	}
	return &user, nil
}

// IssueEphemeral stores a random single-use key for the user and
// returns it for embedding in an emailed link.
func (s *TokenService) IssueEphemeral(ctx context.Context, purpose string, userID uuid.UUID) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	key := hex.EncodeToString(raw)

	if err := s.store.Put(ctx, purpose+":"+key, userID.String(), s.ephemeralTTL); err != nil {
		return "", err
	}
	return key, nil
}

// RedeemEphemeral consumes a single-use key. A second redemption of the
// same key fails with ErrInvalidToken.
func (s *TokenService) RedeemEphemeral(ctx context.Context, purpose, key string) (uuid.UUID, error) {
	value, err := s.store.Take(ctx, purpose+":"+key)
	if err != nil {
		return uuid.Nil, err
	}
	if value == "" {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

// Revoke clears both session cookies.
func (s *TokenService) Revoke(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{s.accessCookie, s.refreshCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  expired,
			HTTPOnly: true,
			SameSite: "Lax",
			Path:     "/",
		})
	}
}
