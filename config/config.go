package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the gateway's own database. MySQL when DB_DSN (or the
// individual DB_* variables) is configured, an on-disk SQLite file
// otherwise so a developer can run the gateway with no setup.
func InitDB() (*gorm.DB, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" && os.Getenv("DB_HOST") != "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			getEnv("DB_PORT", "3306"),
			os.Getenv("DB_NAME"),
		)
	}

	if dsn != "" {
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}

	path := getEnv("SQLITE_PATH", "restauration.db")
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
