package config

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/matchdaylabs/tribuna/internal/gateway"
	"github.com/matchdaylabs/tribuna/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

type GatewayConfig struct {
	AccessToken   string
	WebhookSecret string
}

func LoadGatewayConfig() (*GatewayConfig, error) {
	return &GatewayConfig{
		AccessToken:   os.Getenv("MP_ACCESS_TOKEN"),
		WebhookSecret: os.Getenv("MP_WEBHOOK_SECRET"),
	}, nil
}

func InitGatewayClient(cfg *GatewayConfig) (gateway.Client, error) {
	return gateway.NewMercadoPago(cfg.AccessToken)
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.Stadium{},
		&models.Sector{},
		&models.Event{},
		&models.Price{},
		&models.Membership{},
		&models.TicketType{},
		&models.Purchase{},
		&models.Ticket{},
	)
	if err != nil {
		return nil, err
	}

	seedAdmin(db)

	return db, nil
}

// seedAdmin creates an admin account from ADMIN_EMAIL/ADMIN_PASSWORD if no
// user with that email exists yet. Skipped when the variables are unset.
func seedAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("config: failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		NationalID: "00000000",
		FirstName:  "Admin",
		LastName:   "Admin",
		Email:      email,
		Password:   string(hashed),
		Role:       models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("config: failed to seed admin user: %v", err)
	}
}
