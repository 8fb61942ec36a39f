package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-cms/internal/auth"
	"school-cms/internal/domain"
	"school-cms/internal/repository/sqlite"
	"school-cms/internal/service"
)

type testServer struct {
	router  *gin.Engine
	handler *Handler
	codec   *auth.TokenCodec
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	blogRepo := sqlite.NewBlogRepository(db)
	eventRepo := sqlite.NewEventRepository(db)
	contactRepo := sqlite.NewContactRepository(db)
	for _, init := range []func(context.Context) error{userRepo.Init, blogRepo.Init, eventRepo.Init, contactRepo.Init} {
		require.NoError(t, init(ctx))
	}

	hash, err := auth.HashPassword("correct")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        "admin@x.org",
		PasswordHash: hash,
		IsAdmin:      true,
	}))

	codec, err := auth.NewTokenCodec("test-secret", nil)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	content := service.NewContentService(blogRepo, eventRepo, contactRepo)
	login := auth.NewService(userRepo, codec, 30*time.Minute)
	resolver := auth.NewIdentityResolver(codec, userRepo)

	router := gin.New()
	handler := NewHandler(content, login, resolver, nil, "", logger)
	handler.RegisterRoutes(router)
	return &testServer{router: router, handler: handler, codec: codec}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *testServer) authed(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	token, err := s.codec.Issue("admin@x.org", time.Hour)
	require.NoError(t, err)
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestLoginIssuesBearerToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.login(t, "admin@x.org", "correct")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bearer", body["token_type"])
	require.NotEmpty(t, body["access_token"])

	subject, err := srv.codec.Verify(body["access_token"])
	require.NoError(t, err)
	assert.Equal(t, "admin@x.org", subject)
}

// Unknown email and wrong password must be indistinguishable.
func TestLoginFailuresAreUniform(t *testing.T) {
	srv := newTestServer(t)

	unknown := srv.login(t, "nobody@x.org", "correct")
	wrongPass := srv.login(t, "admin@x.org", "incorrect")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
}

func TestProtectedEndpointWithoutHeader(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestProtectedEndpointWithBadToken(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := srv.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "NotBearer something")
	rec = srv.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEventPartialUpdate(t *testing.T) {
	srv := newTestServer(t)

	create := srv.do(srv.authed(t, http.MethodPost, "/api/events",
		`{"title":"Sports Day","description":"Annual games","eventDate":"2025-05-01T10:00:00Z","location":"Old Hall"}`))
	require.Equal(t, http.StatusOK, create.Code)

	var created domain.Event
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	update := srv.do(srv.authed(t, http.MethodPut, "/api/events/"+created.ID, `{"location":"New Hall"}`))
	require.Equal(t, http.StatusOK, update.Code)

	get := srv.do(httptest.NewRequest(http.MethodGet, "/api/events/"+created.ID, nil))
	require.Equal(t, http.StatusOK, get.Code)

	var fetched domain.Event
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &fetched))
	assert.Equal(t, "New Hall", fetched.Location)
	assert.Equal(t, "Sports Day", fetched.Title)
	assert.Equal(t, "Annual games", fetched.Description)
	assert.Equal(t, "2025-05-01T10:00:00Z", fetched.EventDate.Canonical())
}

func TestBlogCreateAppliesDefaults(t *testing.T) {
	srv := newTestServer(t)

	create := srv.do(srv.authed(t, http.MethodPost, "/api/blog",
		`{"title":"Term opens","excerpt":"A new year begins"}`))
	require.Equal(t, http.StatusOK, create.Code)

	var post domain.BlogPost
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &post))
	assert.NotEmpty(t, post.ID)
	assert.False(t, post.PublishDate.IsZero())
	assert.Equal(t, domain.DefaultReadTime, post.ReadTime)
}

func TestContactFormIsPublic(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"A Parent","email":"parent@example.org","subject":"Admissions","message":"When does enrollment open?"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := srv.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	list := srv.do(srv.authed(t, http.MethodGet, "/api/contacts", ""))
	require.Equal(t, http.StatusOK, list.Code)

	var msgs []domain.ContactMessage
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "Admissions", msgs[0].Subject)
}

func TestStatsCountsCollections(t *testing.T) {
	srv := newTestServer(t)

	require.Equal(t, http.StatusOK, srv.do(srv.authed(t, http.MethodPost, "/api/blog",
		`{"title":"One","excerpt":"x"}`)).Code)
	require.Equal(t, http.StatusOK, srv.do(srv.authed(t, http.MethodPost, "/api/events",
		`{"title":"E","description":"d","eventDate":"2025-05-01T10:00:00Z"}`)).Code)

	rec := srv.do(srv.authed(t, http.MethodGet, "/api/stats", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats service.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.BlogPosts)
	assert.Equal(t, int64(1), stats.Events)
	assert.Equal(t, int64(0), stats.Contacts)
}

func TestDegradedModeAnswers503(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := gin.New()
	NewHandler(nil, nil, nil, nil, "", logger).RegisterRoutes(router)
	srv := &testServer{router: router}

	health := srv.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, health.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(health.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])

	blog := srv.do(httptest.NewRequest(http.MethodGet, "/api/blog", nil))
	assert.Equal(t, http.StatusServiceUnavailable, blog.Code)

	form := url.Values{"username": {"admin@x.org"}, "password": {"correct"}}
	loginReq := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(form.Encode()))
	loginReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusServiceUnavailable, srv.do(loginReq).Code)

	about := srv.do(httptest.NewRequest(http.MethodGet, "/api/about", nil))
	assert.Equal(t, http.StatusOK, about.Code)
}

func TestNotFoundMapsTo404(t *testing.T) {
	srv := newTestServer(t)

	get := srv.do(httptest.NewRequest(http.MethodGet, "/api/blog/does-not-exist", nil))
	assert.Equal(t, http.StatusNotFound, get.Code)

	del := srv.do(srv.authed(t, http.MethodDelete, "/api/events/does-not-exist", ""))
	assert.Equal(t, http.StatusNotFound, del.Code)
}

func TestResolvedUserIsAvailableToHandlers(t *testing.T) {
	srv := newTestServer(t)

	var seen *domain.User
	srv.router.GET("/api/whoami", srv.handler.requireAuth(), func(c *gin.Context) {
		user, ok := currentUser(c)
		require.True(t, ok)
		seen = user
		c.Status(http.StatusOK)
	})

	rec := srv.do(srv.authed(t, http.MethodGet, "/api/whoami", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "admin@x.org", seen.Email)
	assert.True(t, seen.IsAdmin)
}
