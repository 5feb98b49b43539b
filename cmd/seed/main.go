package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/openretail/pos/internal/domain"
)

type seedUser struct {
	username string
	password string
	role     domain.Role
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	users := []seedUser{
		{username: "admin", password: envOr("ADMIN_PASSWORD", "admin123"), role: domain.RoleAdmin},
		{username: "cashier", password: envOr("CASHIER_PASSWORD", "cashier123"), role: domain.RoleCashier},
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("failed to hash password", "error", err, "username", u.username)
			os.Exit(1)
		}

		_, err = db.ExecContext(ctx, `
			INSERT INTO users (id, username, password_hash, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (username) DO NOTHING
		`, uuid.New().String(), u.username, string(hash), u.role)
		if err != nil {
			logger.Error("failed to seed user", "error", err, "username", u.username)
			os.Exit(1)
		}
	}

	starterProducts := []domain.Product{
		{Name: "Apple", Price: decimal.NewFromFloat(0.50), Quantity: 100, Category: "Fruits", Barcode: "1001"},
		{Name: "Milk", Price: decimal.NewFromFloat(1.20), Quantity: 50, Category: "Dairy", Barcode: "1002"},
		{Name: "Bread", Price: decimal.NewFromFloat(2.00), Quantity: 30, Category: "Bakery", Barcode: "1003"},
	}

	for _, p := range starterProducts {
		_, err := db.ExecContext(ctx, `
			INSERT INTO products (id, name, price, quantity, category, barcode)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (barcode) DO NOTHING
		`, uuid.New().String(), p.Name, p.Price, p.Quantity, p.Category, p.Barcode)
		if err != nil {
			logger.Error("failed to seed product", "error", err, "barcode", p.Barcode)
			os.Exit(1)
		}
	}

	logger.Info("database seeded", "users", len(users), "products", len(starterProducts))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
