package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Willysmile/Gestion-des-plantes-sub001/config"
	"github.com/Willysmile/Gestion-des-plantes-sub001/database"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/season"
)

type client struct {
	t   *testing.T
	e   *echo.Echo
	uid string
	tok string
}

func newClient(t *testing.T, cfg config.AppConfig) *client {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	if cfg.UploadDir == "" {
		cfg.UploadDir = t.TempDir()
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.PhotoMaxBytes == 0 {
		cfg.PhotoMaxBytes = 1 << 20
	}
	return &client{t: t, e: newServer(cfg, db, season.New("north")), uid: "alice"}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var r *http.Request
	switch b := body.(type) {
	case nil:
		r = httptest.NewRequest(method, path, nil)
	case string:
		r = httptest.NewRequest(method, path, strings.NewReader(b))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err)
		r = httptest.NewRequest(method, path, bytes.NewReader(raw))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return c.send(r)
}

func (c *client) send(r *http.Request) *httptest.ResponseRecorder {
	if c.tok != "" {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+c.tok)
	} else if c.uid != "" {
		r.AddCookie(&http.Cookie{Name: "PLANT_UID", Value: c.uid})
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, r)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type plantResp struct {
	PlantID uint   `json:"plant_id"`
	Name    string `json:"name"`
}

type tagResp struct {
	TagID uint   `json:"tag_id"`
	Name  string `json:"name"`
}

type groupsResp struct {
	Automatic []tagResp `json:"automatic"`
	Manual    []tagResp `json:"manual"`
}

func TestPlantLifecycle(t *testing.T) {
	c := newClient(t, config.AppConfig{DevLogin: true})

	rec := c.do(http.MethodPost, "/plants", map[string]any{"name": " ", "location": "Salon"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/plants", map[string]any{"name": "Monstera", "species": "Monstera deliciosa", "location": "Salon", "light": "Lumineux"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decode[plantResp](t, rec)
	id := func(path string) string { return strings.Replace(path, ":id", jsonID(p.PlantID), 1) }

	// automatic tags come from the plant fields
	groups := decode[groupsResp](t, c.do(http.MethodGet, id("/plants/:id/tags"), nil))
	assert.Len(t, groups.Automatic, 2)
	assert.NotNil(t, groups.Manual)
	assert.Empty(t, groups.Manual)

	rec = c.do(http.MethodPost, id("/plants/:id/tags"), map[string]any{"tag_id": groups.Automatic[0].TagID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/tags", map[string]any{"name": "Cadeau"})
	require.Equal(t, http.StatusCreated, rec.Code)
	manual := decode[tagResp](t, rec)
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/tags", map[string]any{"name": "cadeau"}).Code)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, id("/plants/:id/tags"), map[string]any{"tag_id": manual.TagID}).Code)

	rec = c.do(http.MethodPatch, id("/plants/:id"), map[string]any{"location": "Chambre", "light": ""})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	groups = decode[groupsResp](t, c.do(http.MethodGet, id("/plants/:id/tags"), nil))
	require.Len(t, groups.Automatic, 1)
	assert.Equal(t, "Chambre", groups.Automatic[0].Name)
	require.Len(t, groups.Manual, 1)

	// care history with dose labels
	rec = c.do(http.MethodPost, id("/plants/:id/care-events"), map[string]any{"kind": "fertilizing", "date": "2024-05-02", "amount": 2, "unit": "unité"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = c.do(http.MethodPost, id("/plants/:id/care-events"), map[string]any{"kind": "watering", "date": "2024-05-03", "amount": 1, "unit": "dose"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, id("/plants/:id/care-events"), map[string]any{"kind": "disease"}).Code)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, id("/plants/:id/care-events"), map[string]any{"kind": "watering", "date": "hier"}).Code)

	history := decode[[]map[string]any](t, c.do(http.MethodGet, id("/plants/:id/care-events"), nil))
	require.Len(t, history, 2)
	assert.Equal(t, "1 dose", history[0]["dose_label"])
	assert.Equal(t, "2 bâtons d'engrais", history[1]["dose_label"])
	only := decode[[]map[string]any](t, c.do(http.MethodGet, id("/plants/:id/care-events?kind=fertilizing&to=2024-05-02"), nil))
	assert.Len(t, only, 1)

	// frequencies
	rec = c.do(http.MethodPut, id("/plants/:id/frequencies/%C3%A9t%C3%A9"), map[string]any{"watering_days": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	freqs := decode[[]map[string]any](t, c.do(http.MethodGet, id("/plants/:id/frequencies"), nil))
	require.Len(t, freqs, 4)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPut, id("/plants/:id/frequencies/mousson"), map[string]any{"watering_days": 3}).Code)

	// overview bundles everything
	ov := decode[map[string]any](t, c.do(http.MethodGet, id("/plants/:id/overview"), nil))
	assert.Contains(t, ov["latest"], "watering")
	assert.Len(t, ov["status"], 2)
	assert.NotNil(t, ov["photos"])

	// reminders only list due actions
	rec = c.do(http.MethodGet, "/reminders", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// audit trail
	logs := decode[[]map[string]any](t, c.do(http.MethodGet, id("/plants/:id/audit-logs"), nil))
	assert.NotEmpty(t, logs)

	// exports
	rec = c.do(http.MethodGet, id("/plants/:id/export.xlsx"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".xlsx")
	rec = c.do(http.MethodGet, id("/plants/:id/care-sheet.pdf"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	// another user sees nothing
	other := *c
	other.uid = "bob"
	assert.Equal(t, http.StatusNotFound, other.do(http.MethodGet, id("/plants/:id"), nil).Code)
	assert.Equal(t, http.StatusNotFound, other.do(http.MethodGet, id("/plants/:id/tags"), nil).Code)
	assert.Empty(t, decode[[]plantResp](t, other.do(http.MethodGet, "/plants", nil)))

	require.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, id("/plants/:id"), nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, id("/plants/:id"), nil).Code)
}

func TestPatchedDatesUseConfiguredZone(t *testing.T) {
	c := newClient(t, config.AppConfig{DevLogin: true, Timezone: "America/Los_Angeles"})
	p := decode[plantResp](t, c.do(http.MethodPost, "/plants", map[string]any{"name": "Calathea"}))
	id := func(path string) string { return strings.Replace(path, ":id", jsonID(p.PlantID), 1) }

	rec := c.do(http.MethodPatch, id("/plants/:id"), map[string]any{"acquired_at": "2023-04-01"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	plant := decode[map[string]any](t, rec)
	assert.Equal(t, "2023-04-01T00:00:00-07:00", plant["acquired_at"])
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPatch, id("/plants/:id"), map[string]any{"acquired_at": "avril"}).Code)
	rec = c.do(http.MethodPatch, id("/plants/:id"), map[string]any{"acquired_at": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[map[string]any](t, rec)["acquired_at"])

	rec = c.do(http.MethodPost, id("/plants/:id/care-events"), map[string]any{"kind": "watering", "date": "2024-05-01"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = c.do(http.MethodPost, id("/plants/:id/care-events"), map[string]any{"kind": "watering", "date": "2024-04-20"})
	require.Equal(t, http.StatusCreated, rec.Code)
	moved := decode[map[string]any](t, rec)
	path := "/care-events/" + jsonID(uint(moved["event_id"].(float64)))

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPatch, path, map[string]any{"date": "01/05/2024"}).Code)
	rec = c.do(http.MethodPatch, path, map[string]any{"date": "2024-05-01", "notes": "décalé"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2024-05-01T00:00:00-07:00", decode[map[string]any](t, rec)["date"])

	day := decode[[]map[string]any](t, c.do(http.MethodGet, id("/plants/:id/care-events?from=2024-05-01&to=2024-05-01"), nil))
	assert.Len(t, day, 2)
}

func TestAuditIPIgnoresForwardedHeaderByDefault(t *testing.T) {
	create := func(c *client) string {
		r := httptest.NewRequest(http.MethodPost, "/plants", strings.NewReader(`{"name":"Aloe"}`))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		r.Header.Set(echo.HeaderXForwardedFor, "203.0.113.9")
		r.RemoteAddr = "10.0.0.2:5123"
		require.Equal(t, http.StatusCreated, c.send(r).Code)
		logs := decode[[]map[string]any](t, c.do(http.MethodGet, "/audit-logs?entity_type=plant", nil))
		require.Len(t, logs, 1)
		return logs[0]["ip"].(string)
	}

	assert.Equal(t, "10.0.0.2", create(newClient(t, config.AppConfig{DevLogin: true})))
	assert.Equal(t, "203.0.113.9", create(newClient(t, config.AppConfig{DevLogin: true, TrustProxy: true})))
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestPhotoUpload(t *testing.T) {
	c := newClient(t, config.AppConfig{DevLogin: true})
	p := decode[plantResp](t, c.do(http.MethodPost, "/plants", map[string]any{"name": "Pilea"}))

	upload := func(name, ct string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		part.Write([]byte("fake image"))
		require.NoError(t, w.WriteField("caption", "nouvelle pousse"))
		require.NoError(t, w.Close())
		r := httptest.NewRequest(http.MethodPost, "/plants/"+jsonID(p.PlantID)+"/photos", &buf)
		r.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		return c.send(r)
	}

	rec := upload("pilea.jpg", "image/jpeg")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	photo := decode[map[string]any](t, rec)
	assert.Equal(t, true, photo["is_main"])
	assert.Equal(t, "nouvelle pousse", photo["caption"])

	served := c.do(http.MethodGet, photo["url"].(string), nil)
	assert.Equal(t, http.StatusOK, served.Code)
	assert.Equal(t, "fake image", served.Body.String())

	assert.Equal(t, http.StatusUnsupportedMediaType, upload("notes.txt", "text/plain").Code)
}

func TestDisplayUnitLabel(t *testing.T) {
	c := newClient(t, config.AppConfig{DevLogin: true})
	for body, want := range map[string]string{
		`{"unit":"unité","amount":null}`: "bâton d'engrais",
		`{"unit":"bâton","amount":"5"}`:  "bâtons",
		`{"unit":"bâton","amount":0}`:    "bâton",
	} {
		out := decode[map[string]any](t, c.do(http.MethodPost, "/display/unit-label", body))
		assert.Equal(t, want, out["label"], body)
	}
}

func TestBearerOnly(t *testing.T) {
	c := newClient(t, config.AppConfig{DevLogin: false, JWTSecret: "s3cret"})
	c.uid = ""
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/plants", nil).Code)
	assert.NotEqual(t, http.StatusOK, c.do(http.MethodGet, "/devlogin", nil).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/metrics", nil).Code)
}

func TestDevLoginIssuesToken(t *testing.T) {
	c := newClient(t, config.AppConfig{DevLogin: true, JWTSecret: "s3cret"})
	c.uid = ""
	out := decode[map[string]string](t, c.do(http.MethodGet, "/devlogin?uid=zoe", nil))
	require.NotEmpty(t, out["token"])

	c.tok = out["token"]
	who := decode[map[string]string](t, c.do(http.MethodGet, "/whoami", nil))
	assert.Equal(t, "zoe", who["uid"])
}
