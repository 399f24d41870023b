// services/profile_service.go - User profile CRUD and account removal
package services

import (
	"errors"

	"findteam/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// ProfileInfo joins the profile row with the account's username.
type ProfileInfo struct {
	models.Profile
	Username string `json:"username"`
}

type UpdateProfileInput struct {
	Username        string `json:"username"`
	ImagePath       string `json:"image_path"`
	Description     string `json:"description"`
	Hobby           string `json:"hobby"`
	City            string `json:"city"`
	ContactEmail    string `json:"contact_email"`
	ContactVK       string `json:"contact_vk"`
	ContactTelegram string `json:"contact_telegram"`
	ContactDiscord  string `json:"contact_discord"`
	ContactOther    string `json:"contact_other"`
}

// Get returns a user's profile page.
func (s *ProfileService) Get(userID uuid.UUID) (*ProfileInfo, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	return &ProfileInfo{Profile: profile, Username: user.Username}, nil
}

// CreateDefault provisions the initial profile at verification time.
// Idempotent: an existing profile is left alone.
func (s *ProfileService) CreateDefault(user *models.User) error {
	var count int64
	s.db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count)
	if count > 0 {
		return nil
	}

	profile := models.Profile{
		UserID:       user.ID,
		ImagePath:    "images/default.jpg",
		ContactEmail: user.Email,
		Description:  "Your description",
		Hobby:        "Sport, Lifestyle, Work",
	}
	return s.db.Create(&profile).Error
}

// Update edits the profile and the account's username in one
// transaction. A username already held by another user is rejected.
func (s *ProfileService) Update(userID uuid.UUID, in UpdateProfileInput) error {
	if in.Username == "" {
		return ErrInvalidData
	}

	var count int64
	s.db.Model(&models.User{}).
		Where("username = ? AND id != ?", in.Username, userID).Count(&count)
	if count > 0 {
		return ErrDuplicateUsername
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
			"image_path":       in.ImagePath,
			"description":      in.Description,
			"hobby":            in.Hobby,
			"city":             in.City,
			"contact_email":    in.ContactEmail,
			"contact_vk":       in.ContactVK,
			"contact_telegram": in.ContactTelegram,
			"contact_discord":  in.ContactDiscord,
			"contact_other":    in.ContactOther,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("username", in.Username).Error
	})
}

// Delete removes the account and everything hanging off it: profile,
// memberships, applications, and owned teams (cascade policy). Callers
// must revoke session cookies afterwards.
func (s *ProfileService) Delete(userID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var owned []models.Team
		if err := tx.Where("owner_id = ?", userID).Find(&owned).Error; err != nil {
			return err
		}
		for _, team := range owned {
			if err := purgeTeam(tx, team.ID); err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Membership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
}
