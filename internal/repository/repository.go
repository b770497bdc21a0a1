package repository

import (
	"github.com/jackc/pgx/v4/pgxpool"
)

type Repository struct {
	db          *pgxpool.Pool
	Submissions SubmissionRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:          db,
		Submissions: NewSubmissionRepository(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}
