package database

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database. The default is a single-file embedded
// sqlite database (DB_FILE, default "data.db"); setting DB_DSN switches
// to postgres instead.
func Connect() {
	// .env is optional; deployments may set env vars directly.
	_ = godotenv.Load()

	var (
		db  *gorm.DB
		err error
	)
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		file := os.Getenv("DB_FILE")
		if file == "" {
			file = "data.db"
		}
		// IMMEDIATE transactions so concurrent writers queue on the
		// busy timeout instead of failing with SQLITE_BUSY.
		dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_txlock=immediate&_fk=1", file)
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	DB = db
}
