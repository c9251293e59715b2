package models

import "time"

// Field bounds enforced on every write (create and edit).
const (
	MaxDisplayNameLen = 50
	MaxEmailLen       = 100
	MaxAvatarLen      = 50
)

// Profile is the on-platform identity record of a participant.
// One per owner address — the derived Address column collides on a second
// create for the same owner.
type Profile struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	Address string `gorm:"uniqueIndex;not null" json:"address"` // derived from ("user", owner)
	Owner   string `gorm:"uniqueIndex;not null" json:"owner"`   // base58 signer key

	DisplayName string `gorm:"size:50;not null" json:"display_name"`
	Email       string `gorm:"size:100" json:"email"`
	Avatar      string `gorm:"size:50" json:"avatar"` // derived from DisplayName, never settable

	IsHunter bool `gorm:"not null" json:"is_hunter"`
	IsClient bool `gorm:"not null" json:"is_client"`

	// Hunter-side reputation counters. Meaningful only when IsHunter.
	BountiesCompleted int64   `gorm:"default:0" json:"bounties_completed"`
	BountiesApplied   int64   `gorm:"default:0" json:"bounties_applied"`
	TotalEarned       int64   `gorm:"default:0" json:"total_earned"`
	SuccessRate       float64 `gorm:"default:0" json:"success_rate"` // 0–100, recomputed, not accumulated

	// Client-side counters. Meaningful only when IsClient.
	BountiesPosted            int64 `gorm:"default:0" json:"bounties_posted"`
	TotalSpent                int64 `gorm:"default:0" json:"total_spent"`
	BountiesCompletedAsClient int64 `gorm:"default:0" json:"bounties_completed_as_client"`
	BountiesRewarded          int64 `gorm:"default:0" json:"bounties_rewarded"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
