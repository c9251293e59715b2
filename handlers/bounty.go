// handlers/bounty.go
package handlers

import (
	"bounty-marketplace-system/middleware"
	"bounty-marketplace-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBountyRoutes(app *fiber.App, bountyService *services.BountyService) {
	signed := middleware.SignerContextMiddleware()

	// 🔓 Public reads
	app.Get("/bounties", bountyService.GetAllBounties)
	app.Get("/bounties/:address", bountyService.GetBountyByAddress)
	app.Get("/bounties/:address/submissions", bountyService.GetBountySubmissions)

	// 🔐 Operations — every one is a single atomic transaction keyed to the
	// verified signer
	app.Post("/bounties", signed, bountyService.CreateBounty)
	app.Post("/bounties/:address/claim", signed, bountyService.ClaimBounty)
	app.Post("/bounties/:address/submissions", signed, bountyService.SubmitWork)
	app.Post("/bounties/:address/winner", signed, bountyService.SelectWinner)

	app.Post("/submissions/upload", signed, bountyService.UploadArtifact)
}
