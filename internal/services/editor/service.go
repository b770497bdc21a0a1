package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"listing_editor/internal/domain/models"
	"listing_editor/internal/lib/logger/sl"
	"listing_editor/internal/lib/mimesniff"
	"listing_editor/internal/services/reconciler"
	"listing_editor/internal/services/validation"

	"github.com/google/uuid"
)

const sessionsDir = "sessions"

type PropertyReader interface {
	GetProperty(ctx context.Context, id int) (*models.Property, error)
}

type FileStager interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (filePath string, fileSize int64, err error)
	DeleteDir(ctx context.Context, subPath string) error
	GetFullPath(relativePath string) string
}

type SubmissionHistory interface {
	ListSubmissions(ctx context.Context, agentID string, limit uint64) ([]models.SubmissionRecord, error)
}

// Service is the agent-facing entry point of the editor workflow.
type Service struct {
	log         *slog.Logger
	store       *Store
	properties  PropertyReader
	stager      FileStager
	validator   *validation.Validator
	coordinator *Coordinator
	history     SubmissionHistory
	resolver    reconciler.Resolver
}

func NewService(
	log *slog.Logger,
	properties PropertyReader,
	stager FileStager,
	validator *validation.Validator,
	coordinator *Coordinator,
	history SubmissionHistory,
	resolver reconciler.Resolver,
	sessionTTL time.Duration,
) *Service {
	svc := &Service{
		log:         log,
		properties:  properties,
		stager:      stager,
		validator:   validator,
		coordinator: coordinator,
		history:     history,
		resolver:    resolver,
	}
	svc.store = NewStore(sessionTTL, svc.teardown)

	return svc
}

// Open starts a session. propertyID selects edit mode.
func (s *Service) Open(ctx context.Context, agent models.Agent, propertyID *int) (SessionView, error) {
	const op = "editor.Service.Open"

	log := s.log.With(
		slog.String("op", op),
		slog.String("agent_id", agent.ID),
	)

	if !agent.HasRole(models.RoleAgent) {
		log.Warn("non-agent tried to open editor")
		return SessionView{}, fmt.Errorf("%s: %w", op, ErrNotAgent)
	}

	var property *models.Property
	if propertyID != nil {
		p, err := s.properties.GetProperty(ctx, *propertyID)
		if err != nil {
			log.Error("failed to load property", slog.Int("property_id", *propertyID), sl.Err(err))
			return SessionView{}, fmt.Errorf("%s: %w", op, err)
		}
		property = p
	}

	session := NewSession(agent.ID, property, s.resolver)
	s.store.Put(session)

	log.Info("editor session opened",
		slog.String("session_id", session.ID.String()),
		slog.String("mode", string(session.Mode())),
	)

	return session.View(), nil
}

func (s *Service) Get(ctx context.Context, agentID, sessionID string) (SessionView, error) {
	const op = "editor.Service.Get"

	session, err := s.session(agentID, sessionID)
	if err != nil {
		return SessionView{}, fmt.Errorf("%s: %w", op, err)
	}
	return session.View(), nil
}

func (s *Service) UpdateDraft(ctx context.Context, agentID, sessionID string, patch DraftPatch) (SessionView, error) {
	const op = "editor.Service.UpdateDraft"

	session, err := s.session(agentID, sessionID)
	if err != nil {
		return SessionView{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := session.ApplyPatch(patch); err != nil {
		return SessionView{}, fmt.Errorf("%s: %w", op, err)
	}
	return session.View(), nil
}

func (s *Service) SetImprovement(ctx context.Context, agentID, sessionID string, improvementID int, checked bool) (SessionView, error) {
	const op = "editor.Service.SetImprovement"

	session, err := s.session(agentID, sessionID)
	if err != nil {
		return SessionView{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := session.SetImprovement(improvementID, checked); err != nil {
		return SessionView{}, fmt.Errorf("%s: %w", op, err)
	}
	return session.View(), nil
}

// ReplaceImages stages the uploaded files and makes them the new-image set.
func (s *Service) ReplaceImages(ctx context.Context, agentID, sessionID string, files []*multipart.FileHeader) (SessionView, error) {
	const op = "editor.Service.ReplaceImages"

	log := s.log.With(
		slog.String("op", op),
		slog.String("session_id", sessionID),
		slog.Int("files", len(files)),
	)

	session, err := s.session(agentID, sessionID)
	if err != nil {
		return SessionView{}, fmt.Errorf("%s: %w", op, err)
	}

	var batch string
	images := make([]models.ImageFile, 0, len(files))
	if len(files) > 0 {
		batch = filepath.Join(sessionsDir, session.ID.String(), uuid.NewString())
	}

	for i, fh := range files {
		rel, size, err := s.stager.Save(ctx, fh, filepath.Join(batch, strconv.Itoa(i)))
		if err != nil {
			log.Error("failed to stage image", slog.String("name", fh.Filename), sl.Err(err))
			s.releaseBatches(ctx, []string{batch})
			return SessionView{}, fmt.Errorf("%s: %w", op, err)
		}

		full := s.stager.GetFullPath(rel)
		contentType, err := mimesniff.Resolve(fh.Header.Get("Content-Type"), func() (io.ReadCloser, error) {
			return os.Open(full)
		})
		if err != nil {
			// тип останется пустым и не пройдёт валидацию
			log.Warn("failed to detect image type", slog.String("name", fh.Filename), sl.Err(err))
		}

		images = append(images, models.ImageFile{
			Name:        filepath.Base(rel),
			ContentType: contentType,
			Size:        size,
			Path:        full,
		})
	}

	release, err := session.ReplaceImages(images, batch)
	if err != nil {
		if batch != "" {
			s.releaseBatches(ctx, []string{batch})
		}
		return SessionView{}, fmt.Errorf("%s: %w", op, err)
	}
	s.releaseBatches(ctx, release)

	log.Debug("images replaced")

	return session.View(), nil
}

func (s *Service) DeleteImage(ctx context.Context, agentID, sessionID, imageID string) (SessionView, error) {
	const op = "editor.Service.DeleteImage"

	session, err := s.session(agentID, sessionID)
	if err != nil {
		return SessionView{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := session.DeleteImage(imageID); err != nil {
		return SessionView{}, fmt.Errorf("%s: %w", op, err)
	}
	return session.View(), nil
}

// Validate is a dry run: no state change and no network call.
func (s *Service) Validate(ctx context.Context, agentID, sessionID string) (models.ValidationResult, error) {
	const op = "editor.Service.Validate"

	session, err := s.session(agentID, sessionID)
	if err != nil {
		return models.ValidationResult{}, fmt.Errorf("%s: %w", op, err)
	}
	res, err := session.Validate(s.validator)
	if err != nil {
		return models.ValidationResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func (s *Service) Submit(ctx context.Context, agentID, sessionID string) (*Outcome, error) {
	const op = "editor.Service.Submit"

	session, err := s.session(agentID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	outcome, err := s.coordinator.Submit(ctx, session)
	if outcome != nil {
		s.releaseBatches(ctx, outcome.released)
		if errors.Is(err, ErrSessionClosed) {
			// teardown пропустил файлы, пока шла отправка
			s.removeSessionDir(session)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return outcome, nil
}

func (s *Service) Close(ctx context.Context, agentID, sessionID string) error {
	const op = "editor.Service.Close"

	if _, err := s.session(agentID, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.store.Delete(sessionID)
	return nil
}

func (s *Service) History(ctx context.Context, agentID string, limit uint64) ([]models.SubmissionRecord, error) {
	const op = "editor.Service.History"

	if s.history == nil {
		return []models.SubmissionRecord{}, nil
	}
	records, err := s.history.ListSubmissions(ctx, agentID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}

// Shutdown tears down every open session.
func (s *Service) Shutdown() {
	s.store.CloseAll()
}

func (s *Service) session(agentID, sessionID string) (*Session, error) {
	session, ok := s.store.Get(sessionID)
	if !ok || session.AgentID != agentID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// teardown is the single cleanup point for a closed session. Staged files of
// an in-flight submission are removed by Submit once the call returns.
func (s *Service) teardown(session *Session) {
	if session.State() == StateSubmitting {
		return
	}
	s.removeSessionDir(session)
}

func (s *Service) removeSessionDir(session *Session) {
	const op = "editor.Service.removeSessionDir"

	dir := filepath.Join(sessionsDir, session.ID.String())
	if err := s.stager.DeleteDir(context.Background(), dir); err != nil {
		s.log.Warn("failed to remove staged files",
			slog.String("op", op),
			slog.String("session_id", session.ID.String()),
			sl.Err(err),
		)
		return
	}
	s.log.Debug("editor session closed", slog.String("op", op), slog.String("session_id", session.ID.String()))
}

func (s *Service) releaseBatches(ctx context.Context, batches []string) {
	for _, b := range batches {
		if b == "" {
			continue
		}
		if err := s.stager.DeleteDir(context.WithoutCancel(ctx), b); err != nil {
			s.log.Warn("failed to release staged batch",
				slog.String("op", "editor.Service.releaseBatches"),
				slog.String("batch", b),
				sl.Err(err),
			)
		}
	}
}
