package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	appcontext "github.com/SeakMengs/RenovaSite/internal/app_context"
	"github.com/SeakMengs/RenovaSite/internal/auth"
	"github.com/SeakMengs/RenovaSite/internal/config"
	"github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/controller"
	filestorage "github.com/SeakMengs/RenovaSite/internal/file_storage"
	"github.com/SeakMengs/RenovaSite/internal/metrics"
	"github.com/SeakMengs/RenovaSite/internal/middleware"
	"github.com/SeakMengs/RenovaSite/internal/model"
	"github.com/SeakMengs/RenovaSite/internal/queue"
	"github.com/SeakMengs/RenovaSite/internal/repository"
	"github.com/SeakMengs/RenovaSite/internal/route"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var registerValidations sync.Once

type recordingDispatcher struct {
	jobs []queue.MailJobPayload
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, job queue.MailJobPayload) error {
	d.jobs = append(d.jobs, job)
	return nil
}

type testServer struct {
	router     *gin.Engine
	app        *appcontext.Application
	dispatcher *recordingDispatcher
	jwt        *auth.JWT
	storage    *filestorage.MemoryStorage
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registerValidations.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		require.True(t, ok)
		require.NoError(t, util.RegisterCustomValidations(v))
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.Models()...))

	cfg := config.Config{
		ENV:         "test",
		FrontendURL: "https://renova.test",
		Auth: config.AuthConfig{
			JWT_SECRET:  "test-secret",
			AdminEmails: []string{"admin@renova.test"},
		},
	}

	log := util.NewNopLogger()
	jwtService := auth.NewJwt(cfg.Auth, log)
	storage := filestorage.NewMemoryStorage("https://cdn.test/media")
	dispatcher := &recordingDispatcher{}

	app := &appcontext.Application{
		Config:         &cfg,
		Logger:         log,
		Repository:     repository.NewRepository(db, log, jwtService, storage, repository.SettingsCacheOptions{}),
		MailDispatcher: dispatcher,
		JWTService:     jwtService,
		Storage:        storage,
		Metrics:        metrics.New(),
	}

	r := gin.New()
	_middleware := middleware.NewMiddleware(app, nil)
	_controller := controller.NewController(app)

	rApi := r.Group("/api")
	route.V1_Public(rApi, _controller.Public, _controller.Contact)
	route.V1_Auth(rApi, _controller.Auth)
	route.V1_Me(rApi, _controller.User, _middleware)
	route.V1_Admin(rApi, _controller, _middleware)

	return testServer{router: r, app: app, dispatcher: dispatcher, jwt: jwtService, storage: storage}
}

// signIn stores the user and returns an access token for them.
func (s testServer) signIn(t *testing.T, email string, role constant.UserRole) string {
	t.Helper()

	user, err := s.app.Repository.User.Upsert(context.Background(), nil, model.User{
		Email:     email,
		FirstName: "Test",
		Role:      role,
	})
	require.NoError(t, err)

	_, access, err := s.jwt.GenerateRefreshAndAccessToken(auth.JWTPayload{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
	require.NoError(t, err)
	return *access
}

func (s testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, util.Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp util.Response
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(t, http.MethodGet, "/api/v1/admin/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, resp.Success)

	w, _ = s.do(t, http.MethodGet, "/api/v1/admin/projects", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNonAdminIsDenied(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, "visitor@example.com", constant.UserRoleUser)

	w, resp := s.do(t, http.MethodGet, "/api/v1/admin/dashboard", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["accessDenied"])
	assert.Equal(t, middleware.SIGN_OUT_URL, data["signOutUrl"])

	w, resp = s.do(t, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp.Data.(map[string]any)["isAdmin"])
}

func TestAdminCreateProjectSlugConflict(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, "admin@renova.test", constant.UserRoleAdmin)

	body := map[string]any{"title": "Reforma de Cocina", "location": "Sevilla"}

	w, resp := s.do(t, http.MethodPost, "/api/v1/admin/projects", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	project := resp.Data.(map[string]any)["project"].(map[string]any)
	assert.Equal(t, "reforma-de-cocina", project["slug"])

	w, _ = s.do(t, http.MethodGet, "/api/v1/admin/projects/slug-available?slug=reforma-de-cocina", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":false`)

	w, resp = s.do(t, http.MethodPost, "/api/v1/admin/projects", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, resp.Success)

	w, _ = s.do(t, http.MethodPost, "/api/v1/admin/projects", token, map[string]any{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicRoutesHideDrafts(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, "admin@renova.test", constant.UserRoleAdmin)

	_, _ = s.do(t, http.MethodPost, "/api/v1/admin/projects", token, map[string]any{"title": "Baño visible", "slug": "bano-visible", "published": true})
	_, _ = s.do(t, http.MethodPost, "/api/v1/admin/projects", token, map[string]any{"title": "Borrador", "slug": "borrador"})

	w, resp := s.do(t, http.MethodGet, "/api/v1/projects", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	assert.EqualValues(t, 1, data["total"])
	projects := data["projects"].([]any)
	require.Len(t, projects, 1)
	assert.Equal(t, "bano-visible", projects[0].(map[string]any)["slug"])

	w, _ = s.do(t, http.MethodGet, "/api/v1/projects/borrador", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/projects/bano-visible", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp.Data.(map[string]any)["comparisonAvailable"])

	w, _ = s.do(t, http.MethodGet, "/api/v1/projects/bano-visible/qr?size=128", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w, _ = s.do(t, http.MethodGet, "/api/v1/projects/borrador/qr", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactMessageIsDispatched(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodPost, "/api/v1/contact", "", map[string]any{
		"name":    "Lucía",
		"email":   "lucia@example.com",
		"message": "Quiero un presupuesto",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, s.dispatcher.jobs, 1)
	assert.Equal(t, model.DefaultSiteSettings().Email, s.dispatcher.jobs[0].ToEmail)
	assert.Equal(t, 1, testutil.CollectAndCount(s.app.Metrics.Registry(), "contact_messages_total"))

	w, _ = s.do(t, http.MethodPost, "/api/v1/contact", "", map[string]any{"name": "x", "email": "nope", "message": "hola"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, s.dispatcher.jobs, 1)
}

func TestContactWithoutDispatcher(t *testing.T) {
	s := newTestServer(t)
	s.app.MailDispatcher = nil

	w, _ := s.do(t, http.MethodPost, "/api/v1/contact", "", map[string]any{
		"name":    "Lucía",
		"email":   "lucia@example.com",
		"message": "Hola",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminCategoryAndSettings(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, "admin@renova.test", constant.UserRoleAdmin)

	w, _ := s.do(t, http.MethodPost, "/api/v1/admin/categories", token, map[string]any{"name": "Cocinas"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, resp := s.do(t, http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	categories := resp.Data.(map[string]any)["categories"].([]any)
	require.Len(t, categories, 1)
	assert.Equal(t, "cocinas", categories[0].(map[string]any)["slug"])

	w, resp = s.do(t, http.MethodGet, "/api/v1/settings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	settings := resp.Data.(map[string]any)["settings"].(map[string]any)
	assert.Equal(t, model.DefaultSiteSettings().CompanyName, settings["companyName"])
}
