package repository

import (
	"context"
	"fmt"

	"listing_editor/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	submissionsTable = "listing_submissions"

	defaultHistoryLimit = 50
)

type SubmissionRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepo {
	return &SubmissionRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *SubmissionRepo) SaveSubmission(ctx context.Context, rec models.SubmissionRecord) error {
	const op = "repository.submission_repository.SaveSubmission"

	query, args, err := r.sb.Insert(submissionsTable).
		Columns(
			"id",
			"session_id",
			"agent_id",
			"mode",
			"property_id",
			"outcome",
			"reason",
			"images_added",
			"images_deleted",
			"created_at",
		).
		Values(
			rec.ID,
			rec.SessionID,
			rec.AgentID,
			rec.Mode,
			rec.PropertyID,
			rec.Outcome,
			rec.Reason,
			rec.ImagesAdded,
			rec.ImagesDeleted,
			rec.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListSubmissions returns the newest records of the agent first.
func (r *SubmissionRepo) ListSubmissions(ctx context.Context, agentID string, limit uint64) ([]models.SubmissionRecord, error) {
	const op = "repository.submission_repository.ListSubmissions"

	if limit == 0 {
		limit = defaultHistoryLimit
	}

	query, args, err := r.sb.Select(
		"id",
		"session_id",
		"agent_id",
		"mode",
		"property_id",
		"outcome",
		"reason",
		"images_added",
		"images_deleted",
		"created_at",
	).
		From(submissionsTable).
		Where(sq.Eq{"agent_id": agentID}).
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	records := make([]models.SubmissionRecord, 0)
	for rows.Next() {
		var rec models.SubmissionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.SessionID,
			&rec.AgentID,
			&rec.Mode,
			&rec.PropertyID,
			&rec.Outcome,
			&rec.Reason,
			&rec.ImagesAdded,
			&rec.ImagesDeleted,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return records, nil
}

// NopSubmissionRepo используется, когда база не настроена.
type NopSubmissionRepo struct{}

func (NopSubmissionRepo) SaveSubmission(context.Context, models.SubmissionRecord) error {
	return nil
}

func (NopSubmissionRepo) ListSubmissions(context.Context, string, uint64) ([]models.SubmissionRecord, error) {
	return []models.SubmissionRecord{}, nil
}
