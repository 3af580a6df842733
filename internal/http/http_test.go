package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lawoffice/intake/internal/config"
	"github.com/lawoffice/intake/internal/intake/domain"
	intakeHTTP "github.com/lawoffice/intake/internal/intake/http"
	"github.com/lawoffice/intake/internal/intake/http/dto"
	"github.com/lawoffice/intake/internal/intake/usecase/mocks"
	"github.com/lawoffice/intake/internal/metrics"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(nil, "localhost", 8080, logger)
}

func serve(handler http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouter_Health(t *testing.T) {
	server, _ := createIntakeRouter(t, testConfig())

	w := serve(server.GetHandler(), http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	requestID, err := uuid.Parse(w.Header().Get("X-Request-Id"))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), requestID.Version())
}

func TestRouter_ReadyWithoutDatabase(t *testing.T) {
	server, _ := createIntakeRouter(t, testConfig())

	w := serve(server.GetHandler(), http.MethodGet, "/ready")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"not_ready","components":{"database":"error"}}`, w.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("ping ok", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		sqlMock.ExpectPing()

		server := NewServer(db, "localhost", 8080, logger)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready","components":{"database":"ok"}}`, w.Body.String())
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("ping fails", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		sqlMock.ExpectPing().WillReturnError(errors.New("connection refused"))

		server := NewServer(db, "localhost", 8080, logger)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"not_ready","components":{"database":"error"}}`, w.Body.String())
	})
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	server, mockUseCase := createIntakeRouter(t, testConfig())
	mockUseCase.On("Submit", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("store exploded")
	}).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		SubmitPath,
		strings.NewReader(`{"name":"Jane Doe","email":"jane@example.com","phone":"(973) 356-6222"}`),
	)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_NotFound(t *testing.T) {
	server, _ := createIntakeRouter(t, testConfig())

	w := serve(server.GetHandler(), http.MethodGet, "/submissions/1")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_StartAndShutdown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := NewServer(nil, "127.0.0.1", 0, logger)
	handler := intakeHTTP.NewSubmissionHandler(mocks.NewMockSubmissionUseCase(t), 0, logger)
	server.SetupRouter(testConfig(), handler, nil)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(shutdownCtx))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestMetricsServer_Endpoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider, err := metrics.NewProvider("intake")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, logger, provider)

	w := serve(metricsServer.GetHandler(), http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = serve(metricsServer.GetHandler(), http.MethodGet, SubmitPath)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsServer_NilProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metricsServer := NewMetricsServer("localhost", 8081, logger, nil)

	w := serve(metricsServer.GetHandler(), http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestServer_NoMetricsEndpoint verifies the public server does not expose /metrics.
func TestServer_NoMetricsEndpoint(t *testing.T) {
	server, _ := createIntakeRouter(t, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// createIntakeRouter builds the full router with a mocked intake use case.
func createIntakeRouter(t *testing.T, cfg *config.Config) (*Server, *mocks.MockSubmissionUseCase) {
	t.Helper()

	server := createTestServer()
	mockUseCase := mocks.NewMockSubmissionUseCase(t)
	handler := intakeHTTP.NewSubmissionHandler(mockUseCase, dto.MaxRequestBytes(cfg.UploadMaxFiles), server.logger)

	server.SetupRouter(cfg, handler, nil)

	return server, mockUseCase
}

func testConfig() *config.Config {
	return &config.Config{
		CORSAllowOrigins:        "*",
		RateLimitEnabled:        false,
		RateLimitRequestsPerSec: 1,
		RateLimitBurst:          1,
		MetricsNamespace:        "intake",
	}
}

// TestRouter_SubmitPreflight verifies OPTIONS /submit is answered before any body processing.
func TestRouter_SubmitPreflight(t *testing.T) {
	server, _ := createIntakeRouter(t, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, SubmitPath, strings.NewReader("{broken"))
	req.Header.Set("Origin", "https://www.amerlawllc.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

// TestRouter_SubmitMethodNotAllowed verifies non-POST methods on /submit are rejected.
func TestRouter_SubmitMethodNotAllowed(t *testing.T) {
	server, _ := createIntakeRouter(t, testConfig())

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(method, SubmitPath, nil)
			server.GetHandler().ServeHTTP(w, req)

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
		})
	}
}

// TestRouter_UnknownMethodOnHealth verifies the router-wide 405 body.
func TestRouter_UnknownMethodOnHealth(t *testing.T) {
	server, _ := createIntakeRouter(t, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
}

// TestRouter_SubmitPost verifies a POST reaches the use case and carries the request id.
func TestRouter_SubmitPost(t *testing.T) {
	server, mockUseCase := createIntakeRouter(t, testConfig())

	id := int64(1)
	mockUseCase.On("Submit", mock.Anything, mock.Anything).
		Return(domain.Outcome{ID: &id, Persisted: true, EmailSent: true}, nil).
		Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		SubmitPath,
		strings.NewReader(`{"name":"Jane Doe","email":"jane@example.com","phone":"(973) 356-6222"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"id":1,"emailSent":true}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

// TestRouter_SubmitRateLimited verifies the intake endpoint is throttled per IP when enabled.
func TestRouter_SubmitRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	server, mockUseCase := createIntakeRouter(t, cfg)

	mockUseCase.On("Submit", mock.Anything, mock.Anything).
		Return(domain.Outcome{EmailSent: true}, nil).
		Once()

	body := `{"name":"Jane Doe","email":"jane@example.com","phone":"(973) 356-6222"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, SubmitPath, strings.NewReader(body))
	server.GetHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, SubmitPath, strings.NewReader(body))
	server.GetHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

// TestServer_StartWithoutRouter verifies Start refuses to serve an unconfigured server.
func TestServer_StartWithoutRouter(t *testing.T) {
	server := createTestServer()

	err := server.Start(context.Background())

	assert.Error(t, err)
}
