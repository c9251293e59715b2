// services/profile_service.go
package services

import (
	"errors"
	"log"

	"bounty-marketplace-system/middleware"
	"bounty-marketplace-system/models"
	"bounty-marketplace-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// CreateProfile registers the signer as a marketplace participant. One
// profile per signer: the derived address collides on a second attempt.
func (s *ProfileService) CreateProfile(c *fiber.Ctx) error {
	signer := middleware.Signer(c)

	var req struct {
		DisplayName string `json:"display_name"`
		Email       string `json:"email"`
		IsHunter    bool   `json:"is_hunter"`
		IsClient    bool   `json:"is_client"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if !utils.WithinLen(req.DisplayName, models.MaxDisplayNameLen) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "display_name exceeds 50 characters", "code": CodeTooLong})
	}
	if !utils.WithinLen(req.Email, models.MaxEmailLen) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email exceeds 100 characters", "code": CodeTooLong})
	}

	profile := models.Profile{
		ID:          uuid.NewString(),
		Address:     utils.DeriveAddress(utils.SeedProfile, signer),
		Owner:       signer,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Avatar:      utils.ProcessAvatar(req.DisplayName),
		IsHunter:    req.IsHunter,
		IsClient:    req.IsClient,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Profile{}).Where("address = ?", profile.Address).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return failWith(fiber.StatusConflict, CodeProfileExists, "A profile already exists for this signer")
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return respondOpError(c, err)
	}

	log.Printf("✅ Profile created: %s (%s)", profile.DisplayName, signer)
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// EditProfile updates display name and email, recomputing the avatar. Only
// the record owner may edit; role flags and counters are untouched.
func (s *ProfileService) EditProfile(c *fiber.Ctx) error {
	signer := middleware.Signer(c)
	owner := c.Params("owner")

	var req struct {
		DisplayName string `json:"display_name"`
		Email       string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if !utils.WithinLen(req.DisplayName, models.MaxDisplayNameLen) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "display_name exceeds 50 characters", "code": CodeTooLong})
	}
	if !utils.WithinLen(req.Email, models.MaxEmailLen) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email exceeds 100 characters", "code": CodeTooLong})
	}

	var updated models.Profile
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where("owner = ?", owner).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return failWith(fiber.StatusNotFound, CodeProfileNotFound, "Profile not found")
			}
			return err
		}
		if profile.Owner != signer {
			return failWith(fiber.StatusForbidden, CodeUnauthorized, "Only the profile owner can edit it")
		}

		profile.DisplayName = req.DisplayName
		profile.Email = req.Email
		profile.Avatar = utils.ProcessAvatar(req.DisplayName)
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
		updated = profile
		return nil
	})
	if err != nil {
		return respondOpError(c, err)
	}

	return c.JSON(updated)
}

// DeleteProfile hard-deletes the signer's profile, reclaiming the record.
// There is no referential check: a claimed bounty may keep pointing at the
// deleted owner.
func (s *ProfileService) DeleteProfile(c *fiber.Ctx) error {
	signer := middleware.Signer(c)
	owner := c.Params("owner")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where("owner = ?", owner).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return failWith(fiber.StatusNotFound, CodeProfileNotFound, "Profile not found")
			}
			return err
		}
		if profile.Owner != signer {
			return failWith(fiber.StatusForbidden, CodeUnauthorized, "Only the profile owner can delete it")
		}
		return tx.Delete(&profile).Error
	})
	if err != nil {
		return respondOpError(c, err)
	}

	log.Printf("🗑️ Profile deleted: %s", owner)
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMyProfile returns the signer's own profile.
func (s *ProfileService) GetMyProfile(c *fiber.Ctx) error {
	return s.findProfile(c, middleware.Signer(c))
}

// GetProfileByOwner returns any participant's public profile.
func (s *ProfileService) GetProfileByOwner(c *fiber.Ctx) error {
	return s.findProfile(c, c.Params("owner"))
}

func (s *ProfileService) findProfile(c *fiber.Ctx, owner string) error {
	var profile models.Profile
	if err := s.DB.Where("owner = ?", owner).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found", "code": CodeProfileNotFound})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(profile)
}
