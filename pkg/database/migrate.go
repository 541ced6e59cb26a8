package database

import (
	"context"
	"fmt"
	"time"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
)

// The registry table. Subdomains are stored lower-case; the check constraints
// mirror the validation applied when a snapshot is built.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clinic_subdomains (
		subdomain  VARCHAR(63) PRIMARY KEY CHECK (subdomain = lower(subdomain)),
		slug       TEXT        NOT NULL CHECK (slug <> ''),
		name       TEXT,
		is_active  BOOLEAN     NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS clinic_subdomains_slug_idx ON clinic_subdomains (slug)`,
}

// Migrate creates the registry schema if it does not exist.
func Migrate(ctx context.Context, db *DB) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range migrations {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

const upsertTenant = `
INSERT INTO clinic_subdomains (subdomain, slug, name, is_active)
VALUES ($1, $2, NULLIF($3, ''), TRUE)
ON CONFLICT (subdomain) DO UPDATE
SET slug = EXCLUDED.slug, name = EXCLUDED.name, is_active = TRUE, updated_at = now()`

// Seed upserts tenants into the registry table, e.g. to move a file-based
// registry into Postgres.
func Seed(ctx context.Context, db *DB, tenants []tenancy.Tenant) (int, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	n := 0
	for _, t := range tenants {
		if _, err := tx.ExecContext(ctx, upsertTenant, t.Subdomain, t.Slug, t.Name); err != nil {
			return 0, fmt.Errorf("upsert %q: %w", t.Subdomain, err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return n, nil
}
