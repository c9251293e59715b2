// handlers/profile.go
package handlers

import (
	"bounty-marketplace-system/middleware"
	"bounty-marketplace-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App, profileService *services.ProfileService) {
	signed := middleware.SignerContextMiddleware()

	// 🔐 Signed routes — require a gateway-verified signer
	app.Post("/profiles", signed, profileService.CreateProfile)
	app.Get("/profiles/me", signed, profileService.GetMyProfile)
	app.Put("/profiles/:owner", signed, profileService.EditProfile)
	app.Delete("/profiles/:owner", signed, profileService.DeleteProfile)

	// 🔓 Public reads — still behind gateway auth, no signer needed
	app.Get("/profiles/:owner", profileService.GetProfileByOwner)
}
