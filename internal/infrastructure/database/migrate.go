package database

import (
	"embed"
	"fmt"
	"log"
	"sort"
	"strings"

	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration tracks an applied schema change by filename.
type Migration struct {
	ID         int    `gorm:"primary_key"`
	Name       string `gorm:"size:255;not null;unique"`
	ExecutedAt string `gorm:"column:executed_at;type:timestamp;default:CURRENT_TIMESTAMP"`
}

// TableName returns the table name for the Migration model
func (Migration) TableName() string {
	return "migrations"
}

// RunMigrations applies the embedded SQL migration files in name order,
// skipping any already recorded in the migrations table. A failed file
// aborts startup.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`).Error
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var executed []string
	if err := db.Model(&Migration{}).Order("name").Pluck("name", &executed).Error; err != nil {
		return fmt.Errorf("failed to list executed migrations: %w", err)
	}
	done := make(map[string]bool, len(executed))
	for _, name := range executed {
		done[name] = true
	}

	for _, name := range names {
		if done[name] {
			continue
		}

		log.Printf("Applying migration: %s", name)
		contents, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		// A file may hold several statements.
		for _, statement := range strings.Split(string(contents), ";") {
			statement = strings.TrimSpace(statement)
			if statement == "" {
				continue
			}
			if err := db.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s failed: %w", name, err)
			}
		}

		if err := db.Exec("INSERT INTO migrations (name) VALUES (?)", name).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", name, err)
		}
	}

	log.Println("Database migrations completed")
	return nil
}
