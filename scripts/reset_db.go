package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Child tables first; TRUNCATE ... CASCADE handles the rest.
var tables = []string{
	"report_images",
	"pmoc_reports",
	"receipts",
	"financial_transactions",
	"service_requests",
	"equipment",
	"document_counters",
	"technicians",
	"clients",
}

func main() {
	keepAdmins := flag.Bool("keep-admins", true, "Keep admin accounts")
	yes := flag.Bool("yes", false, "Skip the confirmation prompt")
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("   Reset HVAC Database")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: this deletes clients, technicians, equipment, service")
	fmt.Println("requests, PMOC reports, financial transactions and receipts.")
	fmt.Println("Document numbering restarts at PMOC-000001 / REC-000001.")
	fmt.Println()

	if !*yes {
		fmt.Print("Type 'yes' to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" {
			fmt.Println("Reset cancelled.")
			return
		}
	}

	godotenv.Load()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "hvac_db"),
		getEnv("DB_SSLMODE", "disable"),
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v\n", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			log.Fatalf("Failed to truncate %s: %v\n", table, err)
		}
		fmt.Printf("  - cleared %s\n", table)
	}

	if *keepAdmins {
		tag, err := tx.Exec(ctx, "DELETE FROM users WHERE role <> 'admin'")
		if err != nil {
			log.Fatalf("Failed to delete users: %v\n", err)
		}
		fmt.Printf("  - deleted %d non-admin users\n", tag.RowsAffected())
	} else {
		if _, err := tx.Exec(ctx, "TRUNCATE TABLE users RESTART IDENTITY CASCADE"); err != nil {
			log.Fatalf("Failed to truncate users: %v\n", err)
		}
		fmt.Println("  - cleared users (admin is recreated from ADMIN_EMAIL on next start)")
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit transaction: %v\n", err)
	}

	fmt.Println()
	fmt.Println("Database reset successful.")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
