package editor_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"listing_editor/internal/domain/models"
	"listing_editor/internal/services/editor"
	"listing_editor/internal/services/validation"
	storage "listing_editor/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

var agent = models.Agent{ID: "agent-1", FirstName: "Ana", Roles: []string{"User", models.RoleAgent}}

type serviceDeps struct {
	svc      *editor.Service
	reader   *MockPropertyReader
	writer   *MockPropertyWriter
	recorder *MockRecorder
	files    *storage.LocalFileStorage
}

func newService(t *testing.T) serviceDeps {
	t.Helper()

	files, err := storage.NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	d := serviceDeps{
		reader:   new(MockPropertyReader),
		writer:   new(MockPropertyWriter),
		recorder: new(MockRecorder),
		files:    files,
	}
	d.recorder.On("SaveSubmission", mock.Anything, mock.Anything).Return(nil).Maybe()

	v := validation.New()
	coord := editor.NewCoordinator(discardLogger(), v, d.writer, d.recorder, time.Second)
	d.svc = editor.NewService(discardLogger(), d.reader, files, v, coord, d.recorder, nil, time.Minute)
	t.Cleanup(d.svc.Shutdown)

	return d
}

type upload struct {
	name        string
	contentType string
	data        []byte
}

func uploads(t *testing.T, files ...upload) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+f.name+`"`)
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("PUT", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["images"]
}

func TestService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("create mode", func(t *testing.T) {
		d := newService(t)

		view, err := d.svc.Open(ctx, agent, nil)
		require.NoError(t, err)
		assert.Equal(t, models.ModeCreate, view.Mode)
		d.reader.AssertNotCalled(t, "GetProperty", mock.Anything, mock.Anything)
	})

	t.Run("edit mode loads property", func(t *testing.T) {
		d := newService(t)
		id := 11
		d.reader.On("GetProperty", mock.Anything, 11).Return(storedProperty("a.jpg"), nil).Once()

		view, err := d.svc.Open(ctx, agent, &id)
		require.NoError(t, err)
		assert.Equal(t, models.ModeEdit, view.Mode)
		assert.Len(t, view.Existing, 1)
	})

	t.Run("load failure creates no session", func(t *testing.T) {
		d := newService(t)
		id := 404
		d.reader.On("GetProperty", mock.Anything, 404).Return(nil, errors.New("Failed to fetch property.")).Once()

		_, err := d.svc.Open(ctx, agent, &id)
		assert.Error(t, err)
	})

	t.Run("non-agent rejected", func(t *testing.T) {
		d := newService(t)

		_, err := d.svc.Open(ctx, models.Agent{ID: "u1", Roles: []string{"User"}}, nil)
		assert.ErrorIs(t, err, editor.ErrNotAgent)
	})
}

func TestService_SessionsAreAgentScoped(t *testing.T) {
	d := newService(t)
	ctx := context.Background()

	view, err := d.svc.Open(ctx, agent, nil)
	require.NoError(t, err)

	_, err = d.svc.Get(ctx, "someone-else", view.ID)
	assert.ErrorIs(t, err, editor.ErrSessionNotFound)

	_, err = d.svc.Get(ctx, agent.ID, "missing")
	assert.ErrorIs(t, err, editor.ErrSessionNotFound)
}

func TestService_ReplaceImages(t *testing.T) {
	d := newService(t)
	ctx := context.Background()

	view, err := d.svc.Open(ctx, agent, nil)
	require.NoError(t, err)

	first := uploads(t,
		upload{name: "front.jpg", contentType: "image/jpeg", data: []byte("jpeg-data")},
		upload{name: "plan.png", contentType: "application/octet-stream", data: pngBytes},
	)
	view, err = d.svc.ReplaceImages(ctx, agent.ID, view.ID, first)
	require.NoError(t, err)
	require.Len(t, view.Draft.Images, 2)
	assert.Equal(t, "front.jpg", view.Draft.Images[0].Name)
	assert.Equal(t, "image/jpeg", view.Draft.Images[0].ContentType)
	assert.Equal(t, "image/png", view.Draft.Images[1].ContentType, "generic type is sniffed")
	assert.Equal(t, int64(len(pngBytes)), view.Draft.Images[1].Size)

	firstPath := view.Draft.Images[0].Path
	_, err = os.Stat(firstPath)
	require.NoError(t, err)

	second := uploads(t, upload{name: "garden.jpg", contentType: "image/jpeg", data: []byte("g")})
	view, err = d.svc.ReplaceImages(ctx, agent.ID, view.ID, second)
	require.NoError(t, err)
	require.Len(t, view.Draft.Images, 1)

	_, err = os.Stat(firstPath)
	assert.True(t, os.IsNotExist(err), "replaced batch is released")

	// закрытие сессии удаляет staging каталог
	require.NoError(t, d.svc.Close(ctx, agent.ID, view.ID))
	_, err = os.Stat(filepath.Join(d.files.GetBaseDir(), "sessions", view.ID))
	assert.True(t, os.IsNotExist(err))

	_, err = d.svc.Get(ctx, agent.ID, view.ID)
	assert.ErrorIs(t, err, editor.ErrSessionNotFound)
}

func TestService_SubmitFlow(t *testing.T) {
	d := newService(t)
	ctx := context.Background()

	view, err := d.svc.Open(ctx, agent, nil)
	require.NoError(t, err)

	description := "Family house close to schools"
	rooms, baths, size, price := "4", "2", "150", "300000"
	ptype, stype := "1", "2"
	_, err = d.svc.UpdateDraft(ctx, agent.ID, view.ID, editor.DraftPatch{
		Description:        &description,
		RoomCount:          &rooms,
		BathroomCount:      &baths,
		SizeInSquareMeters: &size,
		Price:              &price,
		PropertyTypeID:     &ptype,
		SaleTypeID:         &stype,
	})
	require.NoError(t, err)
	_, err = d.svc.SetImprovement(ctx, agent.ID, view.ID, 8, true)
	require.NoError(t, err)

	res, err := d.svc.Validate(ctx, agent.ID, view.ID)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "images")

	_, err = d.svc.ReplaceImages(ctx, agent.ID, view.ID, uploads(t, upload{name: "a.png", contentType: "image/png", data: pngBytes}))
	require.NoError(t, err)

	d.writer.On("CreateProperty", mock.Anything, mock.MatchedBy(func(sub models.Submission) bool {
		if len(sub.Images) != 1 {
			return false
		}
		data, err := os.ReadFile(sub.Images[0].Path)
		return err == nil && bytes.Equal(data, pngBytes) && sub.Improvements[0] == 8
	})).Return(&models.Property{ID: 77}, nil).Once()

	out, err := d.svc.Submit(ctx, agent.ID, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 77, out.Property.ID)
	assert.Equal(t, editor.RedirectAfterSubmit, out.Redirect)

	got, err := d.svc.Get(ctx, agent.ID, view.ID)
	require.NoError(t, err)
	assert.Equal(t, editor.StateSucceeded, got.State)

	d.writer.AssertExpectations(t)
}

func TestService_History(t *testing.T) {
	d := newService(t)
	records := []models.SubmissionRecord{{AgentID: agent.ID, Outcome: models.OutcomeSucceeded}}
	d.recorder.On("ListSubmissions", mock.Anything, agent.ID, uint64(20)).Return(records, nil).Once()

	got, err := d.svc.History(context.Background(), agent.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}
