package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/saadkhan011/calcrew-frontend/internal/config"
	"github.com/saadkhan011/calcrew-frontend/internal/storage"
)

// createtable creates the checkout_sessions table for local development and
// optionally purges expired rows.
func main() {
	dsnFlag := flag.String("dsn", os.Getenv("DB_DSN"), "MySQL DSN")
	purge := flag.Bool("purge", false, "Delete expired sessions after migrating")
	flag.Parse()

	dsn, err := config.NormalizeMySQLDSN(*dsnFlag)
	if err != nil {
		log.Fatalf("Invalid DSN: %v", err)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	store := storage.NewSQL(db, 0)
	if err := store.AutoMigrate(); err != nil {
		log.Fatalf("Failed to create checkout_sessions: %v", err)
	}
	log.Println("checkout_sessions ready")

	if *purge {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := store.PurgeExpired(ctx)
		if err != nil {
			log.Fatalf("Purge failed: %v", err)
		}
		log.Printf("purged %d expired sessions", n)
	}
}
