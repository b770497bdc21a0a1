package editor_test

import (
	"context"
	"sync/atomic"

	"listing_editor/internal/domain/models"

	"github.com/stretchr/testify/mock"
)

type MockPropertyWriter struct {
	mock.Mock
}

func (m *MockPropertyWriter) CreateProperty(ctx context.Context, sub models.Submission) (*models.Property, error) {
	args := m.Called(ctx, sub)
	p, _ := args.Get(0).(*models.Property)
	return p, args.Error(1)
}

func (m *MockPropertyWriter) UpdateProperty(ctx context.Context, sub models.Submission) (*models.Property, error) {
	args := m.Called(ctx, sub)
	p, _ := args.Get(0).(*models.Property)
	return p, args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) SaveSubmission(ctx context.Context, rec models.SubmissionRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecorder) ListSubmissions(ctx context.Context, agentID string, limit uint64) ([]models.SubmissionRecord, error) {
	args := m.Called(ctx, agentID, limit)
	recs, _ := args.Get(0).([]models.SubmissionRecord)
	return recs, args.Error(1)
}

type MockPropertyReader struct {
	mock.Mock
}

func (m *MockPropertyReader) GetProperty(ctx context.Context, id int) (*models.Property, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Property)
	return p, args.Error(1)
}

// blockingWriter держит вызов, пока тест не отпустит release.
type blockingWriter struct {
	calls   atomic.Int32
	started chan models.Submission
	release chan struct{}
	result  *models.Property
	err     error
}

func newBlockingWriter(result *models.Property, err error) *blockingWriter {
	return &blockingWriter{
		started: make(chan models.Submission, 4),
		release: make(chan struct{}),
		result:  result,
		err:     err,
	}
}

func (w *blockingWriter) CreateProperty(ctx context.Context, sub models.Submission) (*models.Property, error) {
	return w.wait(ctx, sub)
}

func (w *blockingWriter) UpdateProperty(ctx context.Context, sub models.Submission) (*models.Property, error) {
	return w.wait(ctx, sub)
}

func (w *blockingWriter) wait(ctx context.Context, sub models.Submission) (*models.Property, error) {
	w.calls.Add(1)
	w.started <- sub
	select {
	case <-w.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return w.result, w.err
}

type apiError struct {
	msg string
}

func (e *apiError) Error() string       { return "api: " + e.msg }
func (e *apiError) UserMessage() string { return e.msg }
