package models

import "time"

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
	MaxLocationLen    = 100
)

// BountyStatus is the bounty lifecycle state. Transitions only ever move
// forward: open → claimed → completed.
type BountyStatus string

const (
	BountyStatusOpen      BountyStatus = "open"
	BountyStatusClaimed   BountyStatus = "claimed"
	BountyStatusCompleted BountyStatus = "completed"
)

type BountyCategory string

const (
	BountyCategoryTech      BountyCategory = "tech"
	BountyCategorySolana    BountyCategory = "solana"
	BountyCategoryWeb3      BountyCategory = "web3"
	BountyCategoryWeb2      BountyCategory = "web2"
	BountyCategoryDesign    BountyCategory = "design"
	BountyCategoryMarketing BountyCategory = "marketing"
	BountyCategoryOther     BountyCategory = "other"
)

func (c BountyCategory) Valid() bool {
	switch c {
	case BountyCategoryTech, BountyCategorySolana, BountyCategoryWeb3,
		BountyCategoryWeb2, BountyCategoryDesign, BountyCategoryMarketing,
		BountyCategoryOther:
		return true
	}
	return false
}

type BountyDifficulty string

const (
	BountyDifficultyEasy   BountyDifficulty = "easy"
	BountyDifficultyMedium BountyDifficulty = "medium"
	BountyDifficultyHard   BountyDifficulty = "hard"
	BountyDifficultyExpert BountyDifficulty = "expert"
)

func (d BountyDifficulty) Valid() bool {
	switch d {
	case BountyDifficultyEasy, BountyDifficultyMedium,
		BountyDifficultyHard, BountyDifficultyExpert:
		return true
	}
	return false
}

// Bounty is one posted task. The derived Address is computed from the creator
// key and the slugged title, so a creator cannot post the same title twice.
// There is deliberately no delete or cancel path.
type Bounty struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	Address string `gorm:"uniqueIndex;not null" json:"address"` // derived from ("bounty", creator, slug(title))
	Creator string `gorm:"index;not null" json:"creator"`

	Title       string           `gorm:"size:100;not null" json:"title"`
	Description string           `gorm:"size:500" json:"description"`
	Reward      int64            `gorm:"not null" json:"reward"` // native units, fixed at creation
	Location    string           `gorm:"size:100" json:"location"`
	Category    BountyCategory   `gorm:"size:32;not null" json:"category"`
	Difficulty  BountyDifficulty `gorm:"size:32;not null" json:"difficulty"`
	TimeLimit   time.Time        `gorm:"not null" json:"time_limit"` // absolute submission deadline

	Status BountyStatus `gorm:"size:16;not null;index" json:"status"`
	Hunter *string      `gorm:"index" json:"hunter,omitempty"` // nil iff Status = open

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
