package services

import (
	"errors"

	"bounty-marketplace-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WalletService struct {
	DB *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{DB: db}
}

// GetWalletByAddress returns the mirrored balance for a participant. Unsynced
// participants read as zero rather than missing.
func (s *WalletService) GetWalletByAddress(c *fiber.Ctx) error {
	address := c.Params("address")

	var wallet models.Wallet
	if err := s.DB.Where("address = ?", address).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"address": address, "balance": 0})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(fiber.Map{"address": wallet.Address, "balance": wallet.Balance})
}
