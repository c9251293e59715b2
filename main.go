package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bounty-marketplace-system/handlers"
	"bounty-marketplace-system/middleware"
	"bounty-marketplace-system/models"
	"bounty-marketplace-system/services"
	"bounty-marketplace-system/utils"
	"bounty-marketplace-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // 100MB, artifact uploads included
	})

	// 🔐❗ GLOBAL: Only gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-Service-Token, X-Signer-Address",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Bounty{},
		&models.Submission{},
		&models.EscrowAccount{},
		&models.Wallet{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	escrow := services.NewEscrowPolicy(cfg.EscrowMode)
	profileService := services.NewProfileService(db)
	bountyService := services.NewBountyService(db, escrow)
	walletService := services.NewWalletService(db)

	walletSyncClient := workers.NewWalletSyncClient(db, cfg.LedgerURL, cfg.GatewayToken)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go workers.PollWallets(ctx, walletSyncClient, time.Duration(cfg.WalletPollEvery)*time.Second)

	bountyService.StartDeadlineWatcher()

	handlers.SetupProfileRoutes(app, profileService)
	handlers.SetupBountyRoutes(app, bountyService)
	handlers.SetupWalletRoutes(app, walletService)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Printf("✅ Escrow mode: %s", cfg.EscrowMode)
	log.Printf("✅ Wallet polling running (every %ds)", cfg.WalletPollEvery)
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from the ledger gateway")

	<-ctx.Done()
	log.Println("Shutting down server...")
}
