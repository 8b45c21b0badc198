package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitLabel(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"unit":"unité","amount":null}`, "bâton d'engrais"},
		{`{"unit":"unité"}`, "bâton d'engrais"},
		{`{"unit":"unité","amount":3}`, "bâtons d'engrais"},
		{`{"unit":"bâton","amount":1}`, "bâton"},
		{`{"unit":"bâton","amount":1.0}`, "bâton"},
		{`{"unit":"bâton","amount":"5"}`, "bâtons"},
		{`{"unit":"bâton","amount":"1"}`, "bâtons"},
		{`{"unit":"bâton","amount":0}`, "bâton"},
		{`{"unit":"bâton","amount":""}`, "bâton"},
		{`{"unit":"dose","amount":true}`, "doses"},
		{`{"unit":"ml","amount":250}`, "ml"},
	}
	e := echo.New()
	h := New()
	for _, tc := range tests {
		t.Run(tc.body, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/display/unit-label", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			require.NoError(t, h.UnitLabel(e.NewContext(req, rec)))
			require.Equal(t, http.StatusOK, rec.Code)

			var out map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			assert.Equal(t, tc.want, out["label"])
		})
	}
}

func TestUnitLabelBadJSON(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/display/unit-label", strings.NewReader(`{"unit":`))
	rec := httptest.NewRecorder()
	require.NoError(t, New().UnitLabel(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
