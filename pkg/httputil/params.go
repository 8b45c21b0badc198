package httputil

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const DateLayout = "2006-01-02"

// ParseID reads a positive numeric path parameter.
func ParseID(c echo.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(n), nil
}

// ParseDate accepts YYYY-MM-DD or RFC 3339. Dates without a time are
// interpreted in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// UID returns the authenticated user id set by the auth middleware.
func UID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

// Error writes {"error": msg} with status.
func Error(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}

// StoreError maps a repository error: not found becomes 404, anything else 500.
func StoreError(c echo.Context, err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Error(c, http.StatusNotFound, what+" not found")
	}
	return Error(c, http.StatusInternalServerError, err.Error())
}
