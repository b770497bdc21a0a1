package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"listing_editor/internal/app"
	"listing_editor/internal/config"

	"github.com/brianvoe/gofakeit"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

type received struct {
	method string
	path   string
	fields map[string][]string
	files  []string
}

// fakeEstateAPI отвечает как внешний API объектов и запоминает отправки.
type fakeEstateAPI struct {
	mu          sync.Mutex
	submissions []received
}

func (f *fakeEstateAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/account/current-user":
		_, _ = w.Write([]byte(`{"id":"agent-7","firstName":"Lucia","lastName":"Perez","roles":["Agent"]}`))
	case r.URL.Path == "/propertytype":
		_, _ = w.Write([]byte(`[{"id":1,"name":"House"},{"id":2,"name":"Apartment"}]`))
	case r.URL.Path == "/saletype":
		_, _ = w.Write([]byte(`[{"id":1,"name":"Sale"},{"id":2,"name":"Rent"}]`))
	case r.URL.Path == "/improvement":
		_, _ = w.Write([]byte(`[{"id":3,"name":"Pool"},{"id":5,"name":"Garage"}]`))
	case r.Method == http.MethodGet && r.URL.Path == "/property/11":
		_, _ = w.Write([]byte(`{
			"id": 11, "uniqueCode": "HSE-11", "description": "Family house with a large garden",
			"roomCount": 4, "bathroomCount": 2, "sizeInSquareMeters": 180, "price": 320000,
			"isAvailable": true, "images": ["/uploads/11/front.jpg", "/uploads/11/garden.jpg"],
			"propertyType": {"id": 1, "name": "House"}, "saleType": {"id": 1, "name": "Sale"},
			"improvements": [{"id": 3, "name": "Pool"}], "agentId": "agent-7"
		}`))
	case r.Method == http.MethodPost && r.URL.Path == "/property",
		r.Method == http.MethodPut && r.URL.Path == "/property/11":
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rec := received{method: r.Method, path: r.URL.Path, fields: r.MultipartForm.Value}
		for _, fh := range r.MultipartForm.File["images"] {
			rec.files = append(rec.files, fh.Filename)
		}
		f.mu.Lock()
		f.submissions = append(f.submissions, rec)
		f.mu.Unlock()

		id := 11
		if r.Method == http.MethodPost {
			id = 42
			w.WriteHeader(http.StatusCreated)
		}
		fmt.Fprintf(w, `{"id": %d, "uniqueCode": %q, "isAvailable": true}`, id, r.FormValue("uniqueCode"))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeEstateAPI) last() received {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submissions[len(f.submissions)-1]
}

type EditorFlowSuite struct {
	suite.Suite
	api     *fakeEstateAPI
	srv     *httptest.Server
	app     *app.App
	token   string
	baseDir string
}

func (s *EditorFlowSuite) SetupSuite() {
	s.api = &fakeEstateAPI{}
	s.srv = httptest.NewServer(s.api)

	cfg := config.MustLoadPath("../../config/local.yaml")
	cfg.EstateAPI.BaseURL = s.srv.URL
	s.baseDir = s.T().TempDir()
	cfg.FileStorage.BaseDir = s.baseDir
	cfg.DSN = ""
	cfg.Redis.RedisAddr = ""

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.app = app.New(context.Background(), log, cfg)
	s.app.HTTPServer.BuildRouters()

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"sub": "agent-7",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("suite-secret"))
	s.Require().NoError(err)
	s.token = token
}

func (s *EditorFlowSuite) TearDownSuite() {
	s.app.Editor.Shutdown()
	s.srv.Close()
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

type sessionView struct {
	ID       string `json:"id"`
	Mode     string `json:"mode"`
	State    string `json:"state"`
	Existing []struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"existingImages"`
	Remaining int `json:"remainingImages"`
}

func (s *EditorFlowSuite) do(method, path string, body io.Reader, contentType string) (int, envelope) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+s.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.app.HTTPServer.Echo().ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec.Code, env
}

func (s *EditorFlowSuite) doJSON(method, path, body string) (int, envelope) {
	return s.do(method, path, strings.NewReader(body), "application/json")
}

func (s *EditorFlowSuite) open(body string) sessionView {
	code, env := s.doJSON(http.MethodPost, "/api/v1/editor/sessions", body)
	s.Require().Equal(http.StatusCreated, code)

	var view sessionView
	s.Require().NoError(json.Unmarshal(env.Data, &view))
	return view
}

func (s *EditorFlowSuite) upload(sessionID string, names ...string) int {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, name := range names {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, name))
		h.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(h)
		s.Require().NoError(err)
		_, err = part.Write([]byte("\xff\xd8\xff\xe0" + gofakeit.Word()))
		s.Require().NoError(err)
	}
	s.Require().NoError(w.Close())

	code, _ := s.do(http.MethodPut, "/api/v1/editor/sessions/"+sessionID+"/images", body, w.FormDataContentType())
	return code
}

func (s *EditorFlowSuite) TestCreateListing() {
	view := s.open("")
	s.Equal("create", view.Mode)
	s.Equal("idle", view.State)

	base := "/api/v1/editor/sessions/" + view.ID

	// пустая форма: ошибки по полям, API не вызывается
	code, env := s.doJSON(http.MethodPost, base+"/submit", "")
	s.Equal(http.StatusUnprocessableEntity, code)
	s.Equal("validation_failed", env.Error)

	description := "Bright apartment " + gofakeit.Sentence(6)
	code, _ = s.doJSON(http.MethodPatch, base+"/draft", fmt.Sprintf(`{
		"description": %q, "roomCount": "3", "bathroomCount": 2, "sizeInSquareMeters": "95.5",
		"price": 210000, "propertyTypeId": "2", "saleTypeId": 1, "uniqueCode": "APT-42"
	}`, description))
	s.Require().Equal(http.StatusOK, code)

	code, _ = s.doJSON(http.MethodPut, base+"/amenities/5", "")
	s.Require().Equal(http.StatusOK, code)

	s.Require().Equal(http.StatusOK, s.upload(view.ID, "living.jpg", "kitchen.jpg"))

	code, env = s.doJSON(http.MethodPost, base+"/validate", "")
	s.Require().Equal(http.StatusOK, code)
	s.Contains(string(env.Data), `"valid":true`)

	code, env = s.doJSON(http.MethodPost, base+"/submit", "")
	s.Require().Equal(http.StatusOK, code, string(env.Data))

	var outcome struct {
		State    string `json:"state"`
		Redirect string `json:"redirect"`
		Property struct {
			ID int `json:"id"`
		} `json:"property"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &outcome))
	s.Equal("succeeded", outcome.State)
	s.Equal("/listings", outcome.Redirect)
	s.Equal(42, outcome.Property.ID)

	got := s.api.last()
	s.Equal(http.MethodPost, got.method)
	s.Equal([]string{description}, got.fields["description"])
	s.Equal([]string{"3"}, got.fields["roomCount"])
	s.Equal([]string{"agent-7"}, got.fields["agentId"])
	s.Equal([]string{"5"}, got.fields["improvements"])
	s.Equal([]string{"true"}, got.fields["isAvailable"])
	s.ElementsMatch([]string{"living.jpg", "kitchen.jpg"}, got.files)
	s.NotContains(got.fields, "id")
	s.NotContains(got.fields, "deletedImages")
}

func (s *EditorFlowSuite) TestEditListing() {
	view := s.open(`{"property_id": 11}`)
	s.Equal("edit", view.Mode)
	s.Require().Len(view.Existing, 2)
	s.Equal(2, view.Remaining)

	base := "/api/v1/editor/sessions/" + view.ID

	code, _ := s.doJSON(http.MethodDelete, base+"/images/1", "")
	s.Require().Equal(http.StatusOK, code)
	code, _ = s.doJSON(http.MethodDelete, base+"/images/2", "")
	s.Require().Equal(http.StatusOK, code)

	// повторное удаление ничего не меняет
	code, env := s.doJSON(http.MethodDelete, base+"/images/1", "")
	s.Require().Equal(http.StatusOK, code, env.Error)

	code, env = s.doJSON(http.MethodDelete, base+"/images/7", "")
	s.Equal(http.StatusNotFound, code)
	s.Equal("image_not_found", env.Error)

	// без изображений объект не сохранить
	code, env = s.doJSON(http.MethodPost, base+"/submit", "")
	s.Equal(http.StatusUnprocessableEntity, code)
	s.Equal("domain_error", env.Error)

	s.Require().Equal(http.StatusOK, s.upload(view.ID, "new-front.jpg"))

	code, _ = s.doJSON(http.MethodPatch, base+"/draft", `{"price": "335000", "isAvailable": false}`)
	s.Require().Equal(http.StatusOK, code)

	code, env = s.doJSON(http.MethodPost, base+"/submit", "")
	s.Require().Equal(http.StatusOK, code, string(env.Data))

	got := s.api.last()
	s.Equal(http.MethodPut, got.method)
	s.Equal("/property/11", got.path)
	s.Equal([]string{"11"}, got.fields["id"])
	s.Equal([]string{"335000"}, got.fields["price"])
	s.Equal([]string{"false"}, got.fields["isAvailable"])
	s.Equal([]string{"HSE-11"}, got.fields["uniqueCode"])
	s.ElementsMatch([]string{"/uploads/11/front.jpg", "/uploads/11/garden.jpg"}, got.fields["deletedImages"])
	s.Equal([]string{"new-front.jpg"}, got.files)
}

func (s *EditorFlowSuite) TestCatalogs() {
	code, env := s.doJSON(http.MethodGet, "/api/v1/editor/catalogs", "")
	s.Require().Equal(http.StatusOK, code)

	var catalogs struct {
		PropertyTypes []struct{ Name string } `json:"propertyTypes"`
		Improvements  []struct{ ID int }      `json:"improvements"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &catalogs))
	s.Len(catalogs.PropertyTypes, 2)
	s.Len(catalogs.Improvements, 2)
}

func (s *EditorFlowSuite) TestCloseSessionRemovesStagedFiles() {
	view := s.open("")
	s.Require().Equal(http.StatusOK, s.upload(view.ID, "a.jpg"))

	staged := filepath.Join(s.baseDir, "sessions", view.ID)
	_, err := os.Stat(staged)
	s.Require().NoError(err)

	code, _ := s.doJSON(http.MethodDelete, "/api/v1/editor/sessions/"+view.ID, "")
	s.Require().Equal(http.StatusNoContent, code)

	code, env := s.doJSON(http.MethodGet, "/api/v1/editor/sessions/"+view.ID, "")
	s.Equal(http.StatusNotFound, code)
	s.Equal("session_not_found", env.Error)

	_, err = os.Stat(staged)
	s.True(os.IsNotExist(err))
}

func TestEditorFlowSuite(t *testing.T) {
	if _, err := os.Stat("../../config/local.yaml"); err != nil {
		t.Skip("config/local.yaml not found")
	}
	suite.Run(t, new(EditorFlowSuite))
}
