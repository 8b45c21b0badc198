package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Willysmile/Gestion-des-plantes-sub001/database"
	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
)

func TestMetrics(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Create(&entities.Plant{UserID: "u", Name: "Monstera"}).Error)
	require.NoError(t, db.Create(&entities.Plant{UserID: "u", Name: "Old", Archived: true}).Error)
	Init(db)
	Init(db) // second call is a no-op

	t.Run("care counter", func(t *testing.T) {
		before := testutil.ToFloat64(careEventsRecorded.WithLabelValues(entities.CareWatering))
		IncCareEvent(entities.CareWatering)
		assert.Equal(t, before+1, testutil.ToFloat64(careEventsRecorded.WithLabelValues(entities.CareWatering)))
	})

	t.Run("middleware uses route pattern", func(t *testing.T) {
		e := echo.New()
		e.Use(Middleware())
		e.GET("/plants/:id", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plants/42", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, 1.0, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/plants/:id", "204")))
	})

	t.Run("plant gauge skips archived", func(t *testing.T) {
		n, err := testutil.GatherAndCount(prometheus.DefaultGatherer, metricPrefix+"plants")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1.0, queryCount(db.Model(&entities.Plant{}).Where("archived = ?", false)))
	})
}
