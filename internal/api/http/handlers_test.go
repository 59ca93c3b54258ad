package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/NavFS/internal/backend"
	"github.com/GriffinCanCode/NavFS/internal/domain/session"
	"github.com/GriffinCanCode/NavFS/internal/domain/watch"
	"github.com/GriffinCanCode/NavFS/internal/fs/batch"
	fswatch "github.com/GriffinCanCode/NavFS/internal/fs/watch"
	"github.com/GriffinCanCode/NavFS/internal/service"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

type echoProvider struct{}

func (e *echoProvider) Definition() types.Service {
	return types.Service{
		ID:       "echo",
		Name:     "Echo Service",
		Category: types.CategoryFilesystem,
		Tools: []types.Tool{
			{ID: "echo.ok", Name: "OK", Returns: "object"},
			{ID: "echo.fail", Name: "Fail", Returns: "object"},
		},
	}
}

func (e *echoProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if toolID == "echo.fail" {
		msg := "refused"
		return &types.Result{Success: false, Code: types.CodePermissionDenied, Error: &msg}, nil
	}
	return &types.Result{Success: true, Data: map[string]interface{}{"params": params}}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *Handlers) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := service.NewRegistry()
	require.NoError(t, registry.Register(&echoProvider{}))

	engine := batch.New(0)
	backends := backend.NewRegistry(backend.NewNative(engine))
	sessions := session.NewManager(t.TempDir())
	watches := watch.NewManager(fswatch.Options{
		Backoff:      10 * time.Millisecond,
		PollInterval: 20 * time.Millisecond,
	}, 16, nil, nil)

	h := NewHandlers(registry, backends, sessions, watches, nil)

	router := gin.New()
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/services", h.ListServices)
	router.POST("/commands", h.ExecuteCommand)
	router.GET("/backend", h.Backend)
	return router, h
}

func do(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRootAndHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])
	assert.NotNil(t, health["backend"])
	assert.NotNil(t, health["registry"])
}

func TestListServices(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/services", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Services []types.Service `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "echo", resp.Services[0].ID)
}

func TestExecuteCommand(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/commands", map[string]interface{}{
		"command": "echo.ok",
		"params":  map[string]interface{}{"k": "v"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result types.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
}

func TestExecuteCommandFailureStillOK(t *testing.T) {
	router, _ := newTestRouter(t)

	// A command that ran and failed is a 200 with a failure envelope.
	w := do(t, router, http.MethodPost, "/commands", map[string]interface{}{
		"command": "echo.fail",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result types.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, types.CodePermissionDenied, result.Code)
}

func TestExecuteCommandUnknown(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/commands", map[string]interface{}{
		"command": "no.such",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExecuteCommandMalformed(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/commands", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing command field fails binding validation.
	w = do(t, router, http.MethodPost, "/commands", map[string]interface{}{
		"params": map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBackendObserver(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/backend", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, false, status["loaded"])
	assert.Equal(t, "native", status["backend"])
}

func TestHealthReflectsWatches(t *testing.T) {
	router, h := newTestRouter(t)

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	_, err := h.watches.Start(dir)
	require.NoError(t, err)
	defer h.watches.StopAll()

	w := do(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, float64(1), health["watches"])
}
