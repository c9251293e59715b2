package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"bounty-marketplace-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletSyncClient mirrors spendable balances from the ledger service. The
// ledger owns balances; the marketplace only keeps a local copy current
// enough for escrow checks.
type WalletSyncClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	DB         *gorm.DB
}

func NewWalletSyncClient(db *gorm.DB, baseURL, token string) *WalletSyncClient {
	return &WalletSyncClient{
		BaseURL: baseURL,
		Token:   token,
		DB:      db,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type balanceChange struct {
	Address   string    `json:"address"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *WalletSyncClient) GetChangedBalances(ctx context.Context, since time.Time) ([]balanceChange, error) {
	since = since.UTC()

	u, err := url.Parse(fmt.Sprintf("%s/api/v1/public/balances", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ledger service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("ledger service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Balances []balanceChange `json:"balances"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode ledger response: %w", err)
	}

	return response.Balances, nil
}

// PollWallets upserts changed balances on an interval until ctx is done.
func PollWallets(ctx context.Context, client *WalletSyncClient, pollInterval time.Duration) {
	log.Println("Starting wallet balance polling...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Wallet polling stopped.")
			return
		case <-ticker.C:
			pollStart := time.Now().UTC()

			changes, err := client.GetChangedBalances(ctx, lastSyncTime)
			if err != nil {
				log.Printf("❌ Error polling balances: %v", err)
				continue
			}

			if len(changes) == 0 {
				lastSyncTime = pollStart
				continue
			}

			wallets := make([]models.Wallet, len(changes))
			for i, ch := range changes {
				wallets[i] = models.Wallet{
					ID:           uuid.NewString(),
					Address:      ch.Address,
					Balance:      ch.Balance,
					LastSyncedAt: ch.UpdatedAt,
				}
			}

			err = client.DB.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "address"}},
				DoUpdates: clause.AssignmentColumns([]string{"balance", "last_synced_at", "updated_at"}),
			}).Create(&wallets).Error
			if err != nil {
				log.Printf("❌ Failed to upsert %d wallet(s): %v", len(wallets), err)
				continue
			}

			log.Printf("📥 Synced %d wallet balance(s) from ledger.", len(wallets))
			lastSyncTime = pollStart
		}
	}
}
