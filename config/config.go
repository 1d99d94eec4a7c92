package config

import (
	"log"
	"os"
	"strconv"

	"restaurant-management-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret is the token signing key. Read lazily so a value supplied only
// via .env (loaded by LoadEnv after package init) is still honored.
func JWTSecret() []byte {
	return []byte(GetEnv("JWT_SECRET", "restaurant_saas_super_secret_2024"))
}

// WebhookSecret verifies auth-hook signatures on the email endpoints.
// Format follows the hosted-auth convention: "whsec_" + base64 key.
func WebhookSecret() string {
	return GetEnv("SEND_EMAIL_HOOK_SECRET", "")
}

// MailAPIKey authenticates against the outbound email API.
func MailAPIKey() string {
	return GetEnv("MAIL_API_KEY", "")
}

// MailAPIURL is the outbound email API endpoint.
func MailAPIURL() string {
	return GetEnv("MAIL_API_URL", "https://api.resend.com/emails")
}

// MailFrom is the sender address on outgoing notification emails.
func MailFrom() string {
	return GetEnv("MAIL_FROM", "Restaurant Manager <noreply@example.com>")
}

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// LoadEnv reads a .env file if present. Missing file is fine.
func LoadEnv() {
	_ = godotenv.Load()
}

func InitDB() {
	var err error
	dsn := GetEnv("DB_PATH", "restaurant_manager.db")
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.CustomerProfile{},
		&models.Restaurant{},
		&models.StaffRole{},
		&models.StaffMember{},
		&models.LoyaltyProgram{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.PointEvent{},
		&models.Reservation{},
		&models.InventoryItem{},
		&models.StockMovement{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}
