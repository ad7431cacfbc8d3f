package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS applications (
		id                  UUID PRIMARY KEY,
		owner_id            TEXT NOT NULL,
		candidate_name      TEXT NOT NULL,
		role                TEXT NOT NULL,
		years_of_experience DOUBLE PRECISION NOT NULL CHECK (years_of_experience >= 0),
		resume_link         TEXT NOT NULL DEFAULT '',
		status              TEXT NOT NULL DEFAULT 'applied'
			CHECK (status IN ('applied', 'interview', 'offer', 'rejected')),
		notes               TEXT NOT NULL DEFAULT '',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_updated        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_owner_status_role
		ON applications (owner_id, status, role)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_owner_created
		ON applications (owner_id, created_at DESC)`,
}

// Migrate creates the applications table and its indexes if missing
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
