// services/bounty_service.go
package services

import (
	"errors"
	"log"
	"strconv"
	"time"

	"bounty-marketplace-system/middleware"
	"bounty-marketplace-system/models"
	"bounty-marketplace-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type BountyService struct {
	DB     *gorm.DB
	Escrow EscrowPolicy
}

func NewBountyService(db *gorm.DB, escrow EscrowPolicy) *BountyService {
	return &BountyService{DB: db, Escrow: escrow}
}

// CreateBounty posts a new task at status open. The signer must already hold
// a client-capable profile. In custodial mode the reward moves into the
// bounty's custody record inside the same transaction — if the creator's
// wallet cannot cover it, nothing is created.
func (s *BountyService) CreateBounty(c *fiber.Ctx) error {
	signer := middleware.Signer(c)

	var req struct {
		Title       string                  `json:"title"`
		Description string                  `json:"description"`
		Reward      int64                   `json:"reward"`
		Location    string                  `json:"location"`
		Category    models.BountyCategory   `json:"category"`
		Difficulty  models.BountyDifficulty `json:"difficulty"`
		TimeLimit   time.Time               `json:"time_limit"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if !utils.WithinLen(req.Title, models.MaxTitleLen) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title exceeds 100 characters", "code": CodeTooLong})
	}
	if !utils.WithinLen(req.Description, models.MaxDescriptionLen) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "description exceeds 500 characters", "code": CodeTooLong})
	}
	if !utils.WithinLen(req.Location, models.MaxLocationLen) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "location exceeds 100 characters", "code": CodeTooLong})
	}
	if req.Reward <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reward must be positive", "code": CodeInvalidAmount})
	}
	if req.Category == "" {
		req.Category = models.BountyCategoryOther
	}
	if !req.Category.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown category", "code": CodeInvalidCategory})
	}
	if req.Difficulty == "" {
		req.Difficulty = models.BountyDifficultyMedium
	}
	if !req.Difficulty.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown difficulty", "code": CodeInvalidDifficulty})
	}

	bounty := models.Bounty{
		ID:          uuid.NewString(),
		Address:     utils.DeriveAddress(utils.SeedBounty, signer, slug.Make(req.Title)),
		Creator:     signer,
		Title:       req.Title,
		Description: req.Description,
		Reward:      req.Reward,
		Location:    req.Location,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		TimeLimit:   req.TimeLimit,
		Status:      models.BountyStatusOpen,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where("owner = ?", signer).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return failWith(fiber.StatusNotFound, CodeProfileNotFound, "Create a profile before posting bounties")
			}
			return err
		}
		if !profile.IsClient {
			return failWith(fiber.StatusForbidden, CodeNotAClient, "Only client-capable profiles can post bounties")
		}

		var count int64
		if err := tx.Model(&models.Bounty{}).Where("address = ?", bounty.Address).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return failWith(fiber.StatusConflict, CodeBountyExists, "A bounty with this title already exists for this creator")
		}

		if err := tx.Create(&bounty).Error; err != nil {
			return err
		}
		if err := s.Escrow.Fund(tx, &bounty); err != nil {
			return err
		}

		posted, err := utils.CheckedAdd(profile.BountiesPosted, 1)
		if err != nil {
			return failWith(fiber.StatusUnprocessableEntity, CodeMathOverflow, "bounties_posted overflow")
		}
		profile.BountiesPosted = posted
		return tx.Save(&profile).Error
	})
	if err != nil {
		return respondOpError(c, err)
	}

	log.Printf("✅ Bounty posted: %q by %s (reward %d, %s escrow)", bounty.Title, signer, bounty.Reward, s.Escrow.Mode())
	return c.Status(fiber.StatusCreated).JSON(bounty)
}

// ClaimBounty moves an open bounty to claimed and records the signer as its
// hunter. First successful claim wins; the row-level transaction is what
// keeps two concurrent claims from both seeing status open.
func (s *BountyService) ClaimBounty(c *fiber.Ctx) error {
	signer := middleware.Signer(c)
	address := c.Params("address")

	var claimed models.Bounty
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var bounty models.Bounty
		if err := tx.Where("address = ?", address).First(&bounty).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return failWith(fiber.StatusNotFound, CodeBountyNotFound, "Bounty not found")
			}
			return err
		}
		if bounty.Status != models.BountyStatusOpen {
			return failWith(fiber.StatusConflict, CodeBountyNotOpen, "Bounty is not open")
		}

		var profile models.Profile
		if err := tx.Where("owner = ?", signer).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return failWith(fiber.StatusNotFound, CodeProfileNotFound, "Create a profile before claiming bounties")
			}
			return err
		}
		if !profile.IsHunter {
			return failWith(fiber.StatusForbidden, CodeNotAHunter, "Only hunter-capable profiles can claim bounties")
		}

		hunter := signer
		bounty.Status = models.BountyStatusClaimed
		bounty.Hunter = &hunter
		if err := tx.Save(&bounty).Error; err != nil {
			return err
		}

		applied, err := utils.CheckedAdd(profile.BountiesApplied, 1)
		if err != nil {
			return failWith(fiber.StatusUnprocessableEntity, CodeMathOverflow, "bounties_applied overflow")
		}
		profile.BountiesApplied = applied
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}

		claimed = bounty
		return nil
	})
	if err != nil {
		return respondOpError(c, err)
	}

	log.Printf("🎯 Bounty claimed: %s by %s", address, signer)
	return c.JSON(claimed)
}

// SubmitWork records the claiming hunter's submission link. Checks run in the
// same order every time: status, deadline, then authorization — each failing
// with its own condition.
func (s *BountyService) SubmitWork(c *fiber.Ctx) error {
	signer := middleware.Signer(c)
	address := c.Params("address")

	var req struct {
		SubmissionLink string `json:"submission_link"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !utils.WithinLen(req.SubmissionLink, models.MaxSubmissionLinkLen) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "submission_link exceeds 200 characters", "code": CodeTooLong})
	}

	var submission models.Submission
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var bounty models.Bounty
		if err := tx.Where("address = ?", address).First(&bounty).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return failWith(fiber.StatusNotFound, CodeBountyNotFound, "Bounty not found")
			}
			return err
		}
		if bounty.Status != models.BountyStatusClaimed {
			return failWith(fiber.StatusConflict, CodeInvalidState, "Bounty is not accepting submissions")
		}
		if !time.Now().Before(bounty.TimeLimit) {
			return failWith(fiber.StatusGone, CodeBountyExpired, "Bounty deadline has passed")
		}
		if bounty.Hunter == nil || *bounty.Hunter != signer {
			return failWith(fiber.StatusForbidden, CodeUnauthorized, "Only the claiming hunter can submit work")
		}

		subAddress := utils.DeriveAddress(utils.SeedSubmission, bounty.Address, signer)
		var count int64
		if err := tx.Model(&models.Submission{}).Where("address = ?", subAddress).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return failWith(fiber.StatusConflict, CodeSubmissionExists, "Work already submitted for this bounty")
		}

		submission = models.Submission{
			ID:             uuid.NewString(),
			Address:        subAddress,
			BountyAddress:  bounty.Address,
			Hunter:         signer,
			SubmissionLink: req.SubmissionLink,
			Selected:       false,
		}
		return tx.Create(&submission).Error
	})
	if err != nil {
		return respondOpError(c, err)
	}

	log.Printf("📬 Work submitted: %s on bounty %s", signer, address)
	return c.Status(fiber.StatusCreated).JSON(submission)
}

// SelectWinner pays out a claimed bounty and closes it. Only the creator can
// select; the reward moves per the configured escrow policy, and both sides'
// reputation counters update in the same transaction that flips the status.
func (s *BountyService) SelectWinner(c *fiber.Ctx) error {
	signer := middleware.Signer(c)
	address := c.Params("address")

	var req struct {
		Winner string `json:"winner"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !utils.ValidAddress(req.Winner) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "winner is not a valid base58 key", "code": CodeInvalidWinner})
	}

	var completed models.Bounty
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var bounty models.Bounty
		if err := tx.Where("address = ?", address).First(&bounty).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return failWith(fiber.StatusNotFound, CodeBountyNotFound, "Bounty not found")
			}
			return err
		}
		if bounty.Status != models.BountyStatusClaimed {
			return failWith(fiber.StatusConflict, CodeBountyNotClaimed, "Bounty has not been claimed")
		}
		if bounty.Creator != signer {
			return failWith(fiber.StatusForbidden, CodeUnauthorized, "Only the bounty creator can select a winner")
		}

		var hunterProfile models.Profile
		if err := tx.Where("owner = ?", req.Winner).First(&hunterProfile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return failWith(fiber.StatusNotFound, CodeProfileNotFound, "Winner has no profile")
			}
			return err
		}
		var clientProfile models.Profile
		if err := tx.Where("owner = ?", bounty.Creator).First(&clientProfile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return failWith(fiber.StatusNotFound, CodeProfileNotFound, "Creator has no profile")
			}
			return err
		}

		if err := s.Escrow.Release(tx, &bounty, req.Winner); err != nil {
			return err
		}

		bounty.Status = models.BountyStatusCompleted
		if err := tx.Save(&bounty).Error; err != nil {
			return err
		}

		// Hunter side.
		n, err := utils.CheckedAdd(hunterProfile.BountiesCompleted, 1)
		if err != nil {
			return failWith(fiber.StatusUnprocessableEntity, CodeMathOverflow, "bounties_completed overflow")
		}
		hunterProfile.BountiesCompleted = n
		n, err = utils.CheckedAdd(hunterProfile.TotalEarned, bounty.Reward)
		if err != nil {
			return failWith(fiber.StatusUnprocessableEntity, CodeMathOverflow, "total_earned overflow")
		}
		hunterProfile.TotalEarned = n
		if hunterProfile.BountiesApplied > 0 {
			hunterProfile.SuccessRate = float64(hunterProfile.BountiesCompleted) / float64(hunterProfile.BountiesApplied) * 100.0
		}

		// Client side.
		n, err = utils.CheckedAdd(clientProfile.TotalSpent, bounty.Reward)
		if err != nil {
			return failWith(fiber.StatusUnprocessableEntity, CodeMathOverflow, "total_spent overflow")
		}
		clientProfile.TotalSpent = n
		n, err = utils.CheckedAdd(clientProfile.BountiesCompletedAsClient, 1)
		if err != nil {
			return failWith(fiber.StatusUnprocessableEntity, CodeMathOverflow, "bounties_completed_as_client overflow")
		}
		clientProfile.BountiesCompletedAsClient = n
		if s.Escrow.Mode() == utils.EscrowModeDirect {
			n, err = utils.CheckedAdd(clientProfile.BountiesRewarded, 1)
			if err != nil {
				return failWith(fiber.StatusUnprocessableEntity, CodeMathOverflow, "bounties_rewarded overflow")
			}
			clientProfile.BountiesRewarded = n
		}

		if err := tx.Save(&hunterProfile).Error; err != nil {
			return err
		}
		if err := tx.Save(&clientProfile).Error; err != nil {
			return err
		}

		completed = bounty
		return nil
	})
	if err != nil {
		return respondOpError(c, err)
	}

	log.Printf("🏆 Winner selected: %s on bounty %s (paid %d)", req.Winner, address, completed.Reward)
	return c.JSON(completed)
}

// --- Reads ---

// GetAllBounties lists bounties with optional status/creator/hunter/category
// filters.
func (s *BountyService) GetAllBounties(c *fiber.Ctx) error {
	limitStr := c.Query("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	db := s.DB.Model(&models.Bounty{}).Limit(limit).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	if creator := c.Query("creator"); creator != "" {
		db = db.Where("creator = ?", creator)
	}
	if hunter := c.Query("hunter"); hunter != "" {
		db = db.Where("hunter = ?", hunter)
	}
	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}

	var bounties []models.Bounty
	if err := db.Find(&bounties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search failed"})
	}
	return c.JSON(bounties)
}

// GetBountyByAddress returns one bounty.
func (s *BountyService) GetBountyByAddress(c *fiber.Ctx) error {
	var bounty models.Bounty
	if err := s.DB.Where("address = ?", c.Params("address")).First(&bounty).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bounty not found", "code": CodeBountyNotFound})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(bounty)
}

// GetBountySubmissions lists the submissions recorded against a bounty.
func (s *BountyService) GetBountySubmissions(c *fiber.Ctx) error {
	var submissions []models.Submission
	if err := s.DB.Where("bounty_address = ?", c.Params("address")).
		Order("submitted_at ASC").Find(&submissions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(submissions)
}

// UploadArtifact stores a work artifact in R2 and returns the URL to pass as
// submission_link.
func (s *BountyService) UploadArtifact(c *fiber.Ctx) error {
	signer := middleware.Signer(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file field is required"})
	}

	url, err := utils.UploadSubmissionArtifact(fileHeader, signer)
	if err != nil {
		log.Printf("❌ Artifact upload failed for %s: %v", signer, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store artifact"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
