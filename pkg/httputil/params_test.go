package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")

	for in, ok := range map[string]bool{"12": true, "0": false, "-1": false, "abc": false, "": false} {
		c.SetParamValues(in)
		id, err := ParseID(c, "id")
		if ok {
			require.NoError(t, err, in)
			assert.EqualValues(t, 12, id)
		} else {
			assert.Error(t, err, in)
		}
	}
}

func TestParseDate(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	d, err := ParseDate("2026-04-01", paris)
	require.NoError(t, err)
	assert.Equal(t, paris, d.Location())
	assert.Equal(t, 1, d.Day())

	d, err = ParseDate("2026-04-01T08:30:00Z", paris)
	require.NoError(t, err)
	assert.Equal(t, 8, d.UTC().Hour())

	_, err = ParseDate("01/04/2026", paris)
	assert.Error(t, err)
}

func TestStoreError(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, StoreError(c, fmt.Errorf("find: %w", gorm.ErrRecordNotFound), "plant"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"plant not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, StoreError(c, errors.New("disk full"), "plant"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
