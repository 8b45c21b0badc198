package serviceImp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Willysmile/Gestion-des-plantes-sub001/database"
	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/repository"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/repositoryImp"
)

func TestRecordAndList(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	s := NewAuditService(repositoryImp.New(db))
	ctx := context.Background()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/plants", nil)
	req.Header.Set("User-Agent", "test-agent")
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("uid", "u1")

	pid := uint(7)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	entry := audit.Entry(c, audit.ActionCreate, "plant", 7, &pid, map[string]any{"name": "Monstera"})
	entry.CreatedAt = base
	s.Record(ctx, entry)
	assert.Equal(t, "test-agent", entry.UserAgent)
	assert.Len(t, entry.PayloadDigest, 64)

	upd := audit.Entry(c, audit.ActionUpdate, "plant", 7, &pid, nil)
	upd.CreatedAt = base.Add(time.Minute)
	s.Record(ctx, upd)
	assert.Empty(t, upd.PayloadDigest)

	s.Record(ctx, &entities.AuditLog{UserID: "u2", Action: audit.ActionCreate, EntityType: "tag"})
	s.Record(ctx, nil)

	out, err := s.List(repository.Filter{UserID: "u1", PlantID: &pid})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, audit.ActionUpdate, out[0].Action)
	assert.Equal(t, "Monstera", out[1].Details["name"])

	out, err = s.List(repository.Filter{UserID: "u1", Action: audit.ActionCreate, Limit: 1})
	require.NoError(t, err)
	require.Len(t, out, 1)

	none, err := s.List(repository.Filter{UserID: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, none)
}

func TestDigestIsStable(t *testing.T) {
	a := audit.DigestJSON(map[string]any{"b": 1, "a": "x"})
	b := audit.DigestJSON(map[string]any{"a": "x", "b": 1})
	assert.Equal(t, a, b)
	assert.Empty(t, audit.DigestJSON(nil))
}
