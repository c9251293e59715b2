package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Stable error codes. Every aborted operation surfaces exactly one of these
// so callers can tell which rule failed without parsing the message.
const (
	CodeTooLong           = "too_long"
	CodeInvalidAmount     = "invalid_amount"
	CodeInvalidCategory   = "invalid_category"
	CodeInvalidDifficulty = "invalid_difficulty"
	CodeInvalidWinner     = "invalid_winner"

	CodeUnauthorized = "unauthorized"
	CodeNotAClient   = "not_a_client"
	CodeNotAHunter   = "not_a_hunter"

	CodeProfileExists    = "profile_exists"
	CodeProfileNotFound  = "profile_not_found"
	CodeBountyExists     = "bounty_exists"
	CodeBountyNotFound   = "bounty_not_found"
	CodeBountyNotOpen    = "bounty_not_open"
	CodeBountyNotClaimed = "bounty_not_claimed"
	CodeInvalidState     = "invalid_state"
	CodeBountyExpired    = "bounty_expired"
	CodeSubmissionExists = "submission_exists"

	CodeMathOverflow      = "math_overflow"
	CodeInsufficientFunds = "insufficient_funds"
	CodeEscrowMismatch    = "escrow_mismatch"
)

// opError carries a rule violation out of a transaction closure. The
// transaction rolls back, then the handler maps the violation to a response.
type opError struct {
	Status  int
	Code    string
	Message string
}

func (e *opError) Error() string { return e.Message }

func failWith(status int, code, message string) *opError {
	return &opError{Status: status, Code: code, Message: message}
}

// respondOpError writes an aborted operation's violation, or a generic 500
// when the failure was not one of ours (DB down, constraint race, ...).
func respondOpError(c *fiber.Ctx, err error) error {
	var oe *opError
	if errors.As(err, &oe) {
		return c.Status(oe.Status).JSON(fiber.Map{"error": oe.Message, "code": oe.Code})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "operation failed"})
}
