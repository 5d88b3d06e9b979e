package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rs-sku/shop-tg-bot/bot"
	"github.com/rs-sku/shop-tg-bot/models"
	"github.com/rs-sku/shop-tg-bot/routes"
	"github.com/rs-sku/shop-tg-bot/seed"
	"github.com/rs-sku/shop-tg-bot/transport"
)

func main() {
	log.Println("✅ Starting application...")

	seedPath := flag.String("seed", "", "load initial catalog data from a JSON file and exit")
	flag.Parse()

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Item{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	if *seedPath != "" {
		if err := seed.LoadInitialData(db, *seedPath); err != nil {
			log.Fatalf("❌ Seed failed: %v", err)
		}
		log.Printf("✅ Seeded catalog from %s", *seedPath)
		return
	}

	// Conversation layer wired to the outbound gateway
	sender := transport.NewHTTPSender(os.Getenv("GATEWAY_SEND_URL"))
	shopBot := bot.New(db, sender, os.Getenv("ADMIN_TOKEN"))

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve item photos
	r.Static("/uploads", "./uploads")

	// Setup routes
	routes.SetupRoutes(r, db, shopBot)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}
