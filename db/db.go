package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// DB holds the database connection
var DB *sql.DB

const pingTimeout = 10 * time.Second

// InitDB opens the Postgres pool. An empty connStr falls back to the DB_* variables.
func InitDB(connStr string) error {
	if connStr == "" {
		var err error
		if connStr, err = connStringFromEnv(); err != nil {
			return err
		}
	}

	cfg, err := pgx.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("invalid database connection string: %w", err)
	}

	pool := stdlib.OpenDB(*cfg)
	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(5)
	pool.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database %s@%s/%s: %w", cfg.User, cfg.Host, cfg.Database, err)
	}

	DB = pool
	log.Printf("✓ Database connection established (%s:%d/%s)", cfg.Host, cfg.Port, cfg.Database)
	return nil
}

// connStringFromEnv builds a keyword/value DSN from DB_HOST, DB_PORT, DB_USER,
// DB_PASSWORD, DB_NAME and DB_SSLMODE
func connStringFromEnv() (string, error) {
	host, user, name := os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_NAME")
	if host == "" || user == "" || name == "" {
		return "", errors.New("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, os.Getenv("DB_PASSWORD"), name, sslmode), nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB == nil {
		return nil
	}
	err := DB.Close()
	DB = nil
	return err
}
