package repository

import (
	"context"

	"listing_editor/internal/domain/models"
)

type SubmissionRepository interface {
	SaveSubmission(ctx context.Context, rec models.SubmissionRecord) error
	ListSubmissions(ctx context.Context, agentID string, limit uint64) ([]models.SubmissionRecord, error)
}

type CatalogCache interface {
	Get(ctx context.Context, key string) ([]models.CatalogItem, bool, error)
	Set(ctx context.Context, key string, items []models.CatalogItem) error
}
