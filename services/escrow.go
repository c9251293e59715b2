package services

import (
	"errors"

	"bounty-marketplace-system/models"
	"bounty-marketplace-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EscrowPolicy decides where a bounty's reward sits between posting and
// selection. Both implementations run inside the calling operation's
// transaction: a failed transfer rolls back every other mutation of that
// operation.
type EscrowPolicy interface {
	Mode() utils.EscrowMode
	// Fund runs during createBounty, before the bounty row is visible.
	Fund(tx *gorm.DB, bounty *models.Bounty) error
	// Release runs during selectWinner and must pay the winner exactly
	// bounty.Reward.
	Release(tx *gorm.DB, bounty *models.Bounty, winner string) error
}

func NewEscrowPolicy(mode utils.EscrowMode) EscrowPolicy {
	if mode == utils.EscrowModeDirect {
		return &directEscrow{}
	}
	return &custodialEscrow{}
}

// custodialEscrow moves the reward into a per-bounty custody record at
// creation and drains it to the winner at selection. The custody balance is
// always 0 (row absent) or exactly the reward.
type custodialEscrow struct{}

func (custodialEscrow) Mode() utils.EscrowMode { return utils.EscrowModeCustodial }

func (custodialEscrow) Fund(tx *gorm.DB, bounty *models.Bounty) error {
	if err := debitWallet(tx, bounty.Creator, bounty.Reward); err != nil {
		return err
	}
	escrow := models.EscrowAccount{
		ID:            uuid.NewString(),
		Address:       utils.DeriveAddress(utils.SeedEscrow, bounty.Address),
		BountyAddress: bounty.Address,
		Balance:       bounty.Reward,
	}
	return tx.Create(&escrow).Error
}

func (custodialEscrow) Release(tx *gorm.DB, bounty *models.Bounty, winner string) error {
	var escrow models.EscrowAccount
	if err := tx.Where("bounty_address = ?", bounty.Address).First(&escrow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failWith(fiber.StatusConflict, CodeEscrowMismatch, "Escrow record missing for bounty")
		}
		return err
	}
	if escrow.Balance != bounty.Reward {
		return failWith(fiber.StatusConflict, CodeEscrowMismatch, "Escrow balance does not match reward")
	}
	if err := creditWallet(tx, winner, bounty.Reward); err != nil {
		return err
	}
	// Fully drained — reclaim the custody record.
	return tx.Delete(&escrow).Error
}

// directEscrow never holds funds: the reward moves creator → winner at
// selection time. The creator can spend the balance away between posting and
// selection; the only guarantee is the sufficiency check inside selectWinner's
// transaction.
type directEscrow struct{}

func (directEscrow) Mode() utils.EscrowMode { return utils.EscrowModeDirect }

func (directEscrow) Fund(tx *gorm.DB, bounty *models.Bounty) error { return nil }

func (directEscrow) Release(tx *gorm.DB, bounty *models.Bounty, winner string) error {
	if err := debitWallet(tx, bounty.Creator, bounty.Reward); err != nil {
		return err
	}
	return creditWallet(tx, winner, bounty.Reward)
}

// debitWallet subtracts amount from the address's mirrored balance. The
// conditional UPDATE keeps two concurrent spenders from both observing the
// same balance.
func debitWallet(tx *gorm.DB, address string, amount int64) error {
	res := tx.Model(&models.Wallet{}).
		Where("address = ? AND balance >= ?", address, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return failWith(fiber.StatusUnprocessableEntity, CodeInsufficientFunds,
			"Wallet is missing or does not hold the reward amount")
	}
	return nil
}

// creditWallet adds amount to the address's balance, creating the mirror row
// when the recipient has never been synced.
func creditWallet(tx *gorm.DB, address string, amount int64) error {
	res := tx.Model(&models.Wallet{}).
		Where("address = ?", address).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		wallet := models.Wallet{
			ID:      uuid.NewString(),
			Address: address,
			Balance: amount,
		}
		return tx.Create(&wallet).Error
	}
	return nil
}
