package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Willysmile/Gestion-des-plantes-sub001/database"
)

func call(t *testing.T, h *HealthCtrl) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, h.Health(e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)

	code, body := call(t, NewHealthCtrl(db, t.TempDir()))
	assert.Equal(t, http.StatusOK, code)
	checks := body["checks"].(map[string]any)
	assert.Equal(t, true, checks["uploads"].(map[string]any)["ok"])

	// a missing upload dir is reported but does not fail the probe
	code, body = call(t, NewHealthCtrl(db, ""))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["checks"].(map[string]any)["uploads"].(map[string]any)["ok"])

	code, _ = call(t, NewHealthCtrl(nil, t.TempDir()))
	assert.Equal(t, http.StatusServiceUnavailable, code)
}
