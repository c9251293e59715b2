// handlers/wallet.go
package handlers

import (
	"bounty-marketplace-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App, walletService *services.WalletService) {
	app.Get("/wallets/:address", walletService.GetWalletByAddress)
}
