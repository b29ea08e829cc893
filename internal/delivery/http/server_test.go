package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"usersvc/config"
	httpmiddleware "usersvc/internal/delivery/http/middleware"
	"usersvc/internal/delivery/http/response"
	"usersvc/internal/delivery/http/router"
	"usersvc/internal/delivery/http/router/handler"
	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"
	"usersvc/internal/infra/auth"
	"usersvc/internal/infra/metrics"
	"usersvc/internal/infra/persistence/memory"
	"usersvc/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	apiUser = "them"
	apiKey  = "D4ED43C0-8BD6-4FE2-B358-7C0E230D11EF"
)

type testServer struct {
	t     *testing.T
	echo  *echo.Echo
	users repository.UserRepository
	logs  *bytes.Buffer
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.StorageDriverMemory},
		Auth: &config.AuthConfig{
			BcryptCost:               bcrypt.MinCost,
			MissingCredentialsStatus: http.StatusInternalServerError,
			Principals:               []config.PrincipalConfig{{User: apiUser, Key: apiKey}},
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics", Namespace: "test"},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"

	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	txManager := memory.NewTransactionManager(store)
	hasher := auth.NewBcryptHasher(cfg)
	m := metrics.New(cfg)

	registry, err := auth.NewCredentialRegistry(cfg)
	require.NoError(t, err)

	gate := impl.NewGateService(impl.GateServiceParams{Registry: registry, Metrics: m, Logger: logger})
	userUC := impl.NewUserService(impl.UserServiceParams{
		TxManager: txManager,
		UserRepo:  userRepo,
		Hasher:    hasher,
		Logger:    logger,
	})
	passwordUC := impl.NewPasswordCheckService(impl.PasswordCheckServiceParams{
		UserRepo: userRepo,
		Hasher:   hasher,
		Metrics:  m,
		Config:   cfg,
		Logger:   logger,
	})

	e := NewEcho(cfg, logger, router.RouterParams{
		Config:          cfg,
		UserHandler:     handler.NewUserHandler(handler.UserHandlerParams{UserUC: userUC, Logger: logger}),
		PasswordHandler: handler.NewPasswordHandler(handler.PasswordHandlerParams{PasswordCheckUC: passwordUC, Logger: logger}),
		GateMiddleware:  httpmiddleware.NewGateMiddleware(httpmiddleware.GateMiddlewareParams{Gate: gate, Config: cfg, Logger: logger}),
		Metrics:         m,
	})

	return &testServer{t: t, echo: e, users: userRepo, logs: logs}
}

// do sends a request; a nil credential pair means no Authorization header.
func (s *testServer) do(method, path, body string, creds *[2]string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if creds != nil {
		req.SetBasicAuth(creds[0], creds[1])
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

// authedForm posts a url-encoded form body with valid credentials.
func (s *testServer) authedForm(path, form string) *httptest.ResponseRecorder {
	s.t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.SetBasicAuth(apiUser, apiKey)

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

func (s *testServer) authed(method, path, body string) *httptest.ResponseRecorder {
	return s.do(method, path, body, &[2]string{apiUser, apiKey})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return body
}

func decodeOutcome(t *testing.T, rec *httptest.ResponseRecorder) entity.VerificationOutcome {
	t.Helper()

	var outcome entity.VerificationOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))

	return outcome
}

func TestServer_RejectsMissingCredentialsOnEveryRoute(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/health", ""},
		{http.MethodPost, "/create-user", `{"username":"alice","password":"pw"}`},
		{http.MethodPost, "/find-or-create", `{"username":"alice","password":"pw"}`},
		{http.MethodGet, "/find/alice", ""},
		{http.MethodGet, "/list", ""},
		{http.MethodPost, "/update-user/alice", `{"givenName":"A"}`},
		{http.MethodDelete, "/destroy/alice", ""},
		{http.MethodPost, "/password-check", `{"username":"alice","password":"pw"}`},
		{http.MethodGet, "/metrics", ""},
		{http.MethodGet, "/no-such-route", ""},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := srv.do(route.method, route.path, route.body, nil)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "AUTH_MISSING", body.Error.Code)
			assert.Equal(t, "No Authorization Key", body.Error.Message)
		})
	}

	// Nothing was written by the rejected create calls.
	rec := srv.authed(http.MethodGet, "/list", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestServer_RejectsUnknownPrincipal(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	for _, creds := range [][2]string{{apiUser, "wrong"}, {"someone", apiKey}, {"", apiKey}} {
		rec := srv.do(http.MethodGet, "/list", "", &creds)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "AUTH_REJECTED", body.Error.Code)
		assert.Equal(t, "Not authenticated", body.Error.Message)
		assert.Nil(t, body.Error.Details)
	}
}

func TestServer_NonBasicSchemeIsMissing(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/list", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+apiKey)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "AUTH_MISSING", decodeError(t, rec).Error.Code)
}

func TestServer_MissingCredentialsStatusIsConfigurable(t *testing.T) {
	cfg := newTestConfig()
	cfg.Auth.MissingCredentialsStatus = http.StatusUnauthorized
	srv := newTestServer(t, cfg)

	rec := srv.do(http.MethodGet, "/list", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH_MISSING", decodeError(t, rec).Error.Code)
}

func TestServer_AdmitsRegisteredPrincipal(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	rec := srv.authed(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestServer_PasswordCheckScenarios(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	rec := srv.authed(http.MethodPost, "/password-check", `{"username":"alice","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.VerificationOutcome{
		Check: false, Username: "alice", Message: "Could not find user",
	}, decodeOutcome(t, rec))

	rec = srv.authed(http.MethodPost, "/create-user", `{"username":"alice","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.authed(http.MethodPost, "/password-check", `{"username":"alice","password":"wrong"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.VerificationOutcome{
		Check: false, Username: "alice", Message: "Incorrect username or password",
	}, decodeOutcome(t, rec))

	rec = srv.authed(http.MethodPost, "/password-check", `{"username":"alice","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"check":true,"username":"alice"}`, rec.Body.String())
}

func TestServer_UserLifecycle(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	rec := srv.authed(http.MethodPost, "/create-user",
		`{"username":"alice","password":"s3cret","givenName":"Alice","emails":["alice@example.com"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "$2a$")

	var created entity.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "local", created.Provider)
	assert.Equal(t, []string{"alice@example.com"}, created.Emails)

	rec = srv.authed(http.MethodPost, "/create-user", `{"username":"alice","password":"other"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "USER_ALREADY_EXISTS", decodeError(t, rec).Error.Code)

	rec = srv.authed(http.MethodPost, "/find-or-create", `{"username":"alice","password":"other"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var same entity.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &same))
	assert.Equal(t, created.ID, same.ID)

	rec = srv.authed(http.MethodGet, "/find/alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = srv.authed(http.MethodPost, "/update-user/alice", `{"password":"n3w","familyName":"Smith"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated entity.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Smith", updated.FamilyName)

	rec = srv.authed(http.MethodPost, "/password-check", `{"username":"alice","password":"n3w"}`)
	assert.JSONEq(t, `{"check":true,"username":"alice"}`, rec.Body.String())

	rec = srv.authed(http.MethodPost, "/find-or-create", `{"username":"bob","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.authed(http.MethodGet, "/list", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users []entity.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)

	rec = srv.authed(http.MethodDelete, "/destroy/alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())

	rec = srv.authed(http.MethodDelete, "/destroy/alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Did not find requested alice to delete", decodeError(t, rec).Error.Details)
}

func TestServer_NotFoundRoutes(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	rec := srv.authed(http.MethodGet, "/find/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "USER_NOT_FOUND", body.Error.Code)
	assert.Equal(t, "Did not find ghost", body.Error.Details)
	assert.NotEmpty(t, body.Meta.RequestID)

	rec = srv.authed(http.MethodPost, "/update-user/ghost", `{"givenName":"G"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ValidatesCreateInput(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	rec := srv.authed(http.MethodPost, "/create-user", `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Error.Code)

	rec = srv.authed(http.MethodPost, "/create-user", `{"username":"alice","password":"pw","emails":["not-an-email"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.authed(http.MethodPost, "/create-user", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_EchoesRequestID(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.SetBasicAuth(apiUser, apiKey)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))

	rec = srv.do(http.MethodGet, "/health", "", nil)
	assert.NotEmpty(t, decodeError(t, rec).Meta.RequestID)
}

func TestServer_ExposesMetrics(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	srv.do(http.MethodGet, "/health", "", nil)
	rec := srv.authed(http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_gate_decisions_total{decision="missing"} 1`)
}

func TestServer_PostRoutesReadBodyNotQuery(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	rec := srv.authed(http.MethodPost, "/create-user?username=alice&password=pw", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Error.Code)

	rec = srv.authedForm("/create-user", "username=alice&password=pw")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	// Query parameters on a POST are ignored: the lookup runs for an empty username.
	rec = srv.authed(http.MethodPost, "/password-check?username=alice&password=pw", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.VerificationOutcome{
		Check:   false,
		Message: entity.MessageUserNotFound,
	}, decodeOutcome(t, rec))

	rec = srv.authedForm("/password-check", "username=alice&password=pw")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.VerificationOutcome{Check: true, Username: "alice"}, decodeOutcome(t, rec))
}

func TestServer_PasswordCheckCorruptHash(t *testing.T) {
	srv := newTestServer(t, newTestConfig())
	require.NoError(t, srv.users.Create(context.Background(), &entity.User{
		Username: "mallory",
		Password: "stored-in-plaintext",
		Provider: "local",
	}))

	rec := srv.authed(http.MethodPost, "/password-check", `{"username":"mallory","password":"stored-in-plaintext"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, domainerrors.ErrHashCorrupt.ErrorCode(), body.Error.Code)
	assert.Equal(t, domainerrors.ErrHashCorrupt.Message(), body.Error.Message)
	assert.Nil(t, body.Error.Details)
	assert.NotContains(t, rec.Body.String(), "stored-in-plaintext")
}

func TestServer_PreflightGoesThroughGate(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	req := httptest.NewRequest(http.MethodOptions, "/list", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "AUTH_MISSING", decodeError(t, rec).Error.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestServer_WritesAccessLog(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	rec := srv.authed(http.MethodPost, "/create-user", `{"username":"alice","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = srv.do(http.MethodGet, "/list", "", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	logs := srv.logs.String()
	assert.Contains(t, logs, `"principal":"them"`)
	assert.Contains(t, logs, `"request_id":`)
	assert.Contains(t, logs, `"status":200`)
	assert.Contains(t, logs, `"status":500`)
	assert.NotContains(t, logs, "hunter2")
	assert.NotContains(t, logs, apiKey)
	assert.NotContains(t, logs, "Basic ")
}
