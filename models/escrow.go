package models

import "time"

// EscrowAccount holds a bounty's reward while the bounty is live (custodial
// mode only). Balance is either exactly the bounty reward or the row does not
// exist — funding and release are the only two writers, each inside the
// operation's transaction. The row is deleted when the reward is released.
type EscrowAccount struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	Address string `gorm:"uniqueIndex;not null" json:"address"` // derived from ("bounty-escrow", bounty)

	BountyAddress string `gorm:"uniqueIndex;not null" json:"bounty_address"`
	Balance       int64  `gorm:"not null" json:"balance"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
