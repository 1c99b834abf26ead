package config

import (
	"strings"
	"time"

	"mini-ecommerce-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds all process-wide settings, loaded once at startup and passed
// into constructors. Startup fails if a required variable is missing.
type Config struct {
	DatabaseDSN  string `envconfig:"DATABASE_DSN" required:"true"`
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTAlgorithm string `envconfig:"JWT_ALGORITHM" default:"HS256"`
	JWTTTLMin    int    `envconfig:"JWT_TTL_MIN" default:"60"`
	Port         string `envconfig:"PORT" default:"8080"`
}

func Load() (Config, error) {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTLMin) * time.Minute
}

// OpenDB connects to the database named by the DSN and migrates the schema.
// A postgres-style DSN selects the postgres driver, anything else is treated
// as a sqlite file path.
func OpenDB(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Shipping{},
		&models.Review{},
		&models.WishlistItem{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
