package controllerImp

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type HealthCtrl struct {
	db        *gorm.DB
	uploadDir string
}

func NewHealthCtrl(db *gorm.DB, uploadDir string) *HealthCtrl {
	return &HealthCtrl{db: db, uploadDir: uploadDir}
}

// uploadsWritable reports whether photos can be stored. It does not fail
// the overall status since the API still serves everything else.
func (h *HealthCtrl) uploadsWritable() (bool, string) {
	if h.uploadDir == "" {
		return false, "upload dir not configured"
	}
	f, err := os.CreateTemp(h.uploadDir, ".health-*")
	if err != nil {
		return false, err.Error()
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true, ""
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbOK := true
	dbErr := ""
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil {
			dbOK = false
			dbErr = "db.DB(): " + err.Error()
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbOK = false
			dbErr = "ping: " + err.Error()
		}
	} else {
		dbOK = false
		dbErr = "gorm db is nil"
	}

	upOK, upErr := h.uploadsWritable()

	allOK := dbOK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	type sub struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": sub{OK: dbOK, Err: dbErr},
			"uploads":  sub{OK: upOK, Err: upErr},
		},
		"time": time.Now().Format(time.RFC3339),
	}

	return c.JSON(status, resp)
}
