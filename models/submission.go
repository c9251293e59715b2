package models

import "time"

const MaxSubmissionLinkLen = 200

// Submission = a hunter's recorded work against a claimed bounty.
// One per (bounty, hunter) pair, immutable after creation.
type Submission struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	Address string `gorm:"uniqueIndex;not null" json:"address"` // derived from ("submission", bounty, hunter)

	BountyAddress  string `gorm:"index;not null" json:"bounty_address"`
	Hunter         string `gorm:"index;not null" json:"hunter"`
	SubmissionLink string `gorm:"size:200;not null" json:"submission_link"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`

	// Recorded but never flipped by any operation; kept for wire
	// compatibility with existing readers.
	Selected bool `gorm:"default:false" json:"selected"`
}
