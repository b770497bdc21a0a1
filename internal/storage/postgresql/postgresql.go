package postgresql

import (
	"context"
	"fmt"
	"strings"

	"listing_editor/internal/storage"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Storage struct {
	db *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS listing_submissions (
	id             UUID PRIMARY KEY,
	session_id     UUID NOT NULL,
	agent_id       TEXT NOT NULL,
	mode           TEXT NOT NULL,
	property_id    INT,
	outcome        TEXT NOT NULL,
	reason         TEXT NOT NULL DEFAULT '',
	images_added   INT NOT NULL DEFAULT 0,
	images_deleted INT NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS listing_submissions_agent_created_idx
	ON listing_submissions (agent_id, created_at DESC);
`

func New(ctx context.Context, storagePath string) (*Storage, error) {
	const op = "storage.postgresql.New"

	if strings.TrimSpace(storagePath) == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotConfigured)
	}

	db, err := pgxpool.Connect(ctx, storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		db: db,
	}, nil
}

// Migrate creates the submission history table.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgresql.Migrate"

	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

func (s *Storage) Stop() {
	s.db.Close()
}
