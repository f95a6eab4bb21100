package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Zavian3/truck-listings-scrapper/config"
	"github.com/Zavian3/truck-listings-scrapper/models"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(cfg config.Config) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBSSLMode,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := &PostgresStore{db: db}
	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer schemaCancel()
	if err := store.ensureSchema(schemaCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveRecords upserts the batch keyed by url and returns how many rows
// were written.
func (s *PostgresStore) SaveRecords(ctx context.Context, records []models.ListingRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (
			url, title, price, year, make, model, vin, mileage, cylinders,
			drive, fuel, color, transmission, body_type, location, map_link,
			date_posted, date_scraped, source
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (url) DO UPDATE
		SET
			title = EXCLUDED.title,
			price = EXCLUDED.price,
			year = EXCLUDED.year,
			make = EXCLUDED.make,
			model = EXCLUDED.model,
			vin = EXCLUDED.vin,
			mileage = EXCLUDED.mileage,
			cylinders = EXCLUDED.cylinders,
			drive = EXCLUDED.drive,
			fuel = EXCLUDED.fuel,
			color = EXCLUDED.color,
			transmission = EXCLUDED.transmission,
			body_type = EXCLUDED.body_type,
			location = EXCLUDED.location,
			map_link = EXCLUDED.map_link,
			date_posted = EXCLUDED.date_posted,
			date_scraped = EXCLUDED.date_scraped,
			source = EXCLUDED.source,
			updated_at = NOW()`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	total := 0
	for _, rec := range records {
		if rec.URL == "" {
			continue
		}
		row := rec.Row()
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = v
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert listing %q: %w", rec.URL, err)
		}
		total++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return total, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS listings (
			id BIGSERIAL PRIMARY KEY,
			url TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '',
			year TEXT NOT NULL DEFAULT '',
			make TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			vin TEXT NOT NULL DEFAULT '',
			mileage TEXT NOT NULL DEFAULT '',
			cylinders TEXT NOT NULL DEFAULT '',
			drive TEXT NOT NULL DEFAULT '',
			fuel TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			transmission TEXT NOT NULL DEFAULT '',
			body_type TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			map_link TEXT NOT NULL DEFAULT '',
			date_posted TEXT NOT NULL DEFAULT '',
			date_scraped TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_listings_source ON listings(source);
		CREATE INDEX IF NOT EXISTS idx_listings_make ON listings(make);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
