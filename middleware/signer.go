// middleware/signer.go
package middleware

import (
	"log"

	"bounty-marketplace-system/utils"

	"github.com/gofiber/fiber/v2"
)

// SignerContextMiddleware extracts the verified transaction signer set by the
// ledger gateway. The gateway has already checked the signature; this layer
// only enforces that a signer is present and key-shaped on secured routes.
func SignerContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		signer := c.Get("X-Signer-Address")
		if signer == "" {
			log.Printf("❌ [SIGNER_CTX] X-Signer-Address required but missing: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-Signer-Address — request must come through gateway with a verified signer",
				"code":  "missing_signer",
			})
		}
		if !utils.ValidAddress(signer) {
			log.Printf("❌ [SIGNER_CTX] malformed signer address %q on %s", signer, c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "X-Signer-Address is not a valid base58 key",
				"code":  "invalid_signer",
			})
		}

		c.Locals("signer", signer)
		return c.Next()
	}
}

// Signer returns the verified signer address attached by
// SignerContextMiddleware, or "" on unsecured routes.
func Signer(c *fiber.Ctx) string {
	if s, ok := c.Locals("signer").(string); ok {
		return s
	}
	return ""
}
