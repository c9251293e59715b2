package workers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"bounty-marketplace-system/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newWorkerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Wallet{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestGetChangedBalances(t *testing.T) {
	var gotToken, gotSince string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Service-Token")
		gotSince = r.URL.Query().Get("since")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"balances": []map[string]any{
				{"address": "addr1", "balance": 500, "updated_at": time.Now().UTC()},
			},
		})
	}))
	defer server.Close()

	client := NewWalletSyncClient(newWorkerDB(t), server.URL, "secret-token")
	since := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	changes, err := client.GetChangedBalances(context.Background(), since)
	if err != nil {
		t.Fatalf("GetChangedBalances failed: %v", err)
	}
	if len(changes) != 1 || changes[0].Address != "addr1" || changes[0].Balance != 500 {
		t.Fatalf("unexpected changes: %+v", changes)
	}
	if gotToken != "secret-token" {
		t.Fatalf("service token not sent, got %q", gotToken)
	}
	if gotSince != since.Format(time.RFC3339) {
		t.Fatalf("since = %q, want %q", gotSince, since.Format(time.RFC3339))
	}
}

func TestGetChangedBalancesSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewWalletSyncClient(newWorkerDB(t), server.URL, "secret-token")
	if _, err := client.GetChangedBalances(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestPollWalletsUpsertsBalances(t *testing.T) {
	var balance atomic.Int64
	balance.Store(500)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"balances": []map[string]any{
				{"address": "addr1", "balance": balance.Load(), "updated_at": time.Now().UTC()},
			},
		})
	}))
	defer server.Close()

	db := newWorkerDB(t)
	client := NewWalletSyncClient(db, server.URL, "secret-token")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go PollWallets(ctx, client, 10*time.Millisecond)

	waitForBalance := func(want int64) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			var wallet models.Wallet
			if err := db.Where("address = ?", "addr1").First(&wallet).Error; err == nil && wallet.Balance == want {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Fatalf("wallet never reached balance %d", want)
	}

	waitForBalance(500)

	// A later change must update, not duplicate, the mirror row.
	balance.Store(750)
	waitForBalance(750)

	var count int64
	db.Model(&models.Wallet{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single mirror row, got %d", count)
	}
}
