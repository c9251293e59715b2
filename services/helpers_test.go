package services_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bounty-marketplace-system/handlers"
	"bounty-marketplace-system/models"
	"bounty-marketplace-system/services"
	"bounty-marketplace-system/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"gorm.io/gorm"
)

// newTestApp wires the full route surface over an in-memory sqlite DB, with
// the chosen escrow mode. The gateway middleware sits above these routes in
// production; tests talk to the routes the way the gateway would, setting
// X-Signer-Address directly.
func newTestApp(t *testing.T, mode utils.EscrowMode) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Bounty{},
		&models.Submission{},
		&models.EscrowAccount{},
		&models.Wallet{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	app := fiber.New()
	handlers.SetupProfileRoutes(app, services.NewProfileService(db))
	handlers.SetupBountyRoutes(app, services.NewBountyService(db, services.NewEscrowPolicy(mode)))
	handlers.SetupWalletRoutes(app, services.NewWalletService(db))
	return app, db
}

// testKey builds a distinct, valid base58 signer key per seed byte.
func testKey(seed byte) string {
	return base58.Encode(bytes.Repeat([]byte{seed}, 32))
}

func doJSON(t *testing.T, app *fiber.App, method, path, signer string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if signer != "" {
		req.Header.Set("X-Signer-Address", signer)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		t.Fatalf("status = %d, want %d (body: %v)", resp.StatusCode, want, body)
	}
}

func wantCode(t *testing.T, resp *http.Response, wantStatusCode int, wantErrCode string) {
	t.Helper()
	if resp.StatusCode != wantStatusCode {
		t.Fatalf("status = %d, want %d", resp.StatusCode, wantStatusCode)
	}
	var body struct {
		Code string `json:"code"`
	}
	decodeBody(t, resp, &body)
	if body.Code != wantErrCode {
		t.Fatalf("error code = %q, want %q", body.Code, wantErrCode)
	}
}

func seedWallet(t *testing.T, db *gorm.DB, address string, balance int64) {
	t.Helper()
	wallet := models.Wallet{ID: uuid.NewString(), Address: address, Balance: balance}
	if err := db.Create(&wallet).Error; err != nil {
		t.Fatalf("failed to seed wallet for %s: %v", address, err)
	}
}

func walletBalance(t *testing.T, db *gorm.DB, address string) int64 {
	t.Helper()
	var wallet models.Wallet
	err := db.Where("address = ?", address).First(&wallet).Error
	if err == gorm.ErrRecordNotFound {
		return 0
	}
	if err != nil {
		t.Fatalf("failed to read wallet for %s: %v", address, err)
	}
	return wallet.Balance
}

func loadProfile(t *testing.T, db *gorm.DB, owner string) models.Profile {
	t.Helper()
	var profile models.Profile
	if err := db.Where("owner = ?", owner).First(&profile).Error; err != nil {
		t.Fatalf("failed to load profile for %s: %v", owner, err)
	}
	return profile
}

func loadBounty(t *testing.T, db *gorm.DB, address string) models.Bounty {
	t.Helper()
	var bounty models.Bounty
	if err := db.Where("address = ?", address).First(&bounty).Error; err != nil {
		t.Fatalf("failed to load bounty %s: %v", address, err)
	}
	return bounty
}

func createProfile(t *testing.T, app *fiber.App, signer, name string, isHunter, isClient bool) {
	t.Helper()
	resp := doJSON(t, app, "POST", "/profiles", signer, fiber.Map{
		"display_name": name,
		"email":        name + "@example.com",
		"is_hunter":    isHunter,
		"is_client":    isClient,
	})
	wantStatus(t, resp, fiber.StatusCreated)
}
