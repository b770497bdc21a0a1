package http_test

import (
	"context"
	"mime/multipart"

	"listing_editor/internal/domain/models"
	"listing_editor/internal/services/editor"

	"github.com/stretchr/testify/mock"
)

type MockEditorService struct {
	mock.Mock
}

func (m *MockEditorService) Open(ctx context.Context, agent models.Agent, propertyID *int) (editor.SessionView, error) {
	args := m.Called(ctx, agent, propertyID)
	return args.Get(0).(editor.SessionView), args.Error(1)
}

func (m *MockEditorService) Get(ctx context.Context, agentID, sessionID string) (editor.SessionView, error) {
	args := m.Called(ctx, agentID, sessionID)
	return args.Get(0).(editor.SessionView), args.Error(1)
}

func (m *MockEditorService) UpdateDraft(ctx context.Context, agentID, sessionID string, patch editor.DraftPatch) (editor.SessionView, error) {
	args := m.Called(ctx, agentID, sessionID, patch)
	return args.Get(0).(editor.SessionView), args.Error(1)
}

func (m *MockEditorService) SetImprovement(ctx context.Context, agentID, sessionID string, improvementID int, checked bool) (editor.SessionView, error) {
	args := m.Called(ctx, agentID, sessionID, improvementID, checked)
	return args.Get(0).(editor.SessionView), args.Error(1)
}

func (m *MockEditorService) ReplaceImages(ctx context.Context, agentID, sessionID string, files []*multipart.FileHeader) (editor.SessionView, error) {
	args := m.Called(ctx, agentID, sessionID, files)
	return args.Get(0).(editor.SessionView), args.Error(1)
}

func (m *MockEditorService) DeleteImage(ctx context.Context, agentID, sessionID, imageID string) (editor.SessionView, error) {
	args := m.Called(ctx, agentID, sessionID, imageID)
	return args.Get(0).(editor.SessionView), args.Error(1)
}

func (m *MockEditorService) Validate(ctx context.Context, agentID, sessionID string) (models.ValidationResult, error) {
	args := m.Called(ctx, agentID, sessionID)
	return args.Get(0).(models.ValidationResult), args.Error(1)
}

func (m *MockEditorService) Submit(ctx context.Context, agentID, sessionID string) (*editor.Outcome, error) {
	args := m.Called(ctx, agentID, sessionID)
	outcome, _ := args.Get(0).(*editor.Outcome)
	return outcome, args.Error(1)
}

func (m *MockEditorService) Close(ctx context.Context, agentID, sessionID string) error {
	args := m.Called(ctx, agentID, sessionID)
	return args.Error(0)
}

func (m *MockEditorService) History(ctx context.Context, agentID string, limit uint64) ([]models.SubmissionRecord, error) {
	args := m.Called(ctx, agentID, limit)
	records, _ := args.Get(0).([]models.SubmissionRecord)
	return records, args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Catalogs(ctx context.Context) (models.Catalogs, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Catalogs), args.Error(1)
}
