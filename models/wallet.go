// models/wallet.go
package models

import "time"

// Wallet mirrors a participant's spendable balance from the ledger service.
// Rows are kept fresh by the wallet sync worker; escrow transfers debit and
// credit them inside the same transaction that moves the bounty state.
type Wallet struct {
	ID      string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	Address string `gorm:"uniqueIndex;not null" json:"address"` // participant base58 key

	Balance int64 `gorm:"not null" json:"balance"`

	LastSyncedAt time.Time `json:"last_synced_at"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
