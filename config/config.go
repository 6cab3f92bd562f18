package config

import (
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mug-life-api/models"
)

var DB *gorm.DB

// JWTSecret signs tokens, read from env with a development fallback
var JWTSecret []byte

func init() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()
	JWTSecret = []byte(getEnv("JWT_SECRET", "mug_life_super_secret_2024"))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Port returns the HTTP listen port.
func Port() string {
	return getEnv("PORT", "8080")
}

// InitDB opens the credential database. This is the only durable store;
// orders, carts, inventory and coupons live in memory.
func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_PATH", "mug_life.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := DB.AutoMigrate(&models.User{}); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	logrus.Info("credential database connected and migrated")
}
