package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ragline/ragline/internal/db"
)

func main() {
	ctx := context.Background()
	fmt.Println("PostgreSQL Connection Status:")
	fmt.Println("=============================")

	_ = godotenv.Load("manifests/config.env")
	host := getenv("POSTGRES_HOST", "localhost")
	port := getenv("POSTGRES_PORT", "5432")
	dbName := getenv("POSTGRES_DB", "ragline")
	user := getenv("POSTGRES_USER", "postgres")
	password := getenv("POSTGRES_PASSWORD", "postgres")

	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
	}
	fmt.Printf("Connection: %s\n\n", dsn)

	database, err := db.NewDatabase(db.Config{DSN: dsn})
	if err != nil {
		fmt.Printf("Database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.Ping(pingCtx); err != nil {
		fmt.Printf("Database connection failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Database connection successful")

	repo := db.NewVectorRepository(database)
	counts, err := repo.CountByDatasource(ctx)
	if err != nil {
		fmt.Printf("Could not list datasources (schema missing?): %v\n", err)
		return
	}
	if len(counts) == 0 {
		fmt.Println("No chunks stored yet")
		return
	}
	fmt.Println("\nStored chunks per datasource:")
	for _, c := range counts {
		fmt.Printf("  %-12s %6d chunks  (updated %s)\n", c.Datasource, c.Chunks, c.UpdatedAt.Format(time.RFC3339))
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
