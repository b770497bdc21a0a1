package http

import (
	"context"
	"log/slog"
	"mime/multipart"

	"listing_editor/internal/domain/models"
	"listing_editor/internal/services/editor"

	"github.com/labstack/echo/v4"

	_ "listing_editor/docs"
)

type EditorService interface {
	Open(ctx context.Context, agent models.Agent, propertyID *int) (editor.SessionView, error)
	Get(ctx context.Context, agentID, sessionID string) (editor.SessionView, error)
	UpdateDraft(ctx context.Context, agentID, sessionID string, patch editor.DraftPatch) (editor.SessionView, error)
	SetImprovement(ctx context.Context, agentID, sessionID string, improvementID int, checked bool) (editor.SessionView, error)
	ReplaceImages(ctx context.Context, agentID, sessionID string, files []*multipart.FileHeader) (editor.SessionView, error)
	DeleteImage(ctx context.Context, agentID, sessionID, imageID string) (editor.SessionView, error)
	Validate(ctx context.Context, agentID, sessionID string) (models.ValidationResult, error)
	Submit(ctx context.Context, agentID, sessionID string) (*editor.Outcome, error)
	Close(ctx context.Context, agentID, sessionID string) error
	History(ctx context.Context, agentID string, limit uint64) ([]models.SubmissionRecord, error)
}

type CatalogService interface {
	Catalogs(ctx context.Context) (models.Catalogs, error)
}

type Routers struct {
	log            *slog.Logger
	EditorService  EditorService
	CatalogService CatalogService
}

func NewRouter(log *slog.Logger, editorService EditorService, catalogService CatalogService) *Routers {
	return &Routers{
		log:            log,
		EditorService:  editorService,
		CatalogService: catalogService,
	}
}

const agentKey = "agent"

// SetAgent кладёт проверенного агента в контекст запроса.
func SetAgent(c echo.Context, agent models.Agent) {
	c.Set(agentKey, agent)
}

func AgentFromContext(c echo.Context) (models.Agent, bool) {
	agent, ok := c.Get(agentKey).(models.Agent)
	return agent, ok
}
