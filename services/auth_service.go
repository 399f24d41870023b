// services/auth_service.go - Registration, login and recovery flows
package services

import (
	"context"
	"errors"
	"log"

	"findteam/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService owns the credential lifecycle: registration with email
// verification, login, and the password-recovery flow.
type AuthService struct {
	db       *gorm.DB
	tokens   *TokenService
	mailer   *Mailer
	profiles *ProfileService
}

func NewAuthService(db *gorm.DB, tokens *TokenService, mailer *Mailer, profiles *ProfileService) *AuthService {
	return &AuthService{db: db, tokens: tokens, mailer: mailer, profiles: profiles}
}

// RegisterInput mirrors the registration form. The password arrives
// under the historical name "hashed_password"; hashing happens here.
type RegisterInput struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"hashed_password"`
	ConfirmedPassword string `json:"confirmed_password"`
}

// Register creates an unverified account and emails a confirmation
// link. Registering an email that already has an unverified account
// just resends the link (resent=true); a verified account is rejected.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (resent bool, err error) {
	if len(in.Password) < 6 {
		return false, ErrInvalidData
	}
	if in.Password != in.ConfirmedPassword {
		return false, ErrPasswordMismatch
	}
	if in.Username == "" || in.Email == "" {
		return false, ErrInvalidData
	}

	var existing models.User
	err = s.db.First(&existing, "email = ?", in.Email).Error
	if err == nil {
		if existing.Verified {
			return false, ErrDuplicateEmail
		}
		// Idempotent re-request: resend the verification link.
		if err := s.sendVerification(ctx, &existing); err != nil {
			return false, err
		}
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		Verified: false,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return false, ErrDuplicateUsername
	}

	if err := s.sendVerification(ctx, &user); err != nil {
		return false, err
	}
	log.Printf("user %s registered, verification pending", user.ID)
	return false, nil
}

func (s *AuthService) sendVerification(ctx context.Context, user *models.User) error {
	token, err := s.tokens.IssueEphemeral(ctx, PurposeVerify, user.ID)
	if err != nil {
		return err
	}
	s.mailer.SendVerification(user.Email, token)
	return nil
}

// Login validates credentials. An unknown email and a wrong password
// produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Verified {
		return nil, ErrUnverified
	}
	return &user, nil
}

// VerifyEmail redeems a verification token, flips the verified flag and
// provisions the default profile.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.RedeemEphemeral(ctx, PurposeVerify, token)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if err := s.db.Model(&user).Update("verified", true).Error; err != nil {
		return nil, err
	}
	user.Verified = true

	if err := s.profiles.CreateDefault(&user); err != nil {
		return nil, err
	}
	log.Printf("user %s verified", user.ID)
	return &user, nil
}

// RecoverPassword emails a reset link when the account exists. The
// caller gets a success either way, again to avoid enumeration.
func (s *AuthService) RecoverPassword(ctx context.Context, email string) error {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := s.tokens.IssueEphemeral(ctx, PurposeResetPassword, user.ID)
	if err != nil {
		return err
	}
	s.mailer.SendPasswordReset(user.Email, token)
	return nil
}

// ChangePassword redeems a reset token and stores the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, token, newPassword, confirmed string) error {
	if len(newPassword) < 6 {
		return ErrInvalidData
	}
	if newPassword != confirmed {
		return ErrPasswordMismatch
	}

	userID, err := s.tokens.RedeemEphemeral(ctx, PurposeResetPassword, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("password", string(hash))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidToken
	}
	return nil
}
