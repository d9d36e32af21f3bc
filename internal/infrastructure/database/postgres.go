package database

import (
	"fmt"
	"log"

	"github.com/bizbooks/bizbooks-api/internal/config"
	"github.com/bizbooks/bizbooks-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// SeedDefaultUser creates the login user from ADMIN_* environment variables
// if it does not exist yet. Account provisioning is an out-of-band step;
// this is the only way users enter the system.
func SeedDefaultUser(db *gorm.DB) error {
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail == "" || adminPassword == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping user seed")
		return nil
	}

	var existing entity.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Printf("Default user already exists: %s", adminEmail)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default user password: %w", err)
	}

	if adminName == "" {
		adminName = "Admin"
	}

	user := entity.User{
		Email:        adminEmail,
		Name:         adminName,
		PasswordHash: string(hashedPassword),
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create default user: %w", err)
	}

	log.Printf("Default user created: %s", adminEmail)
	return nil
}
