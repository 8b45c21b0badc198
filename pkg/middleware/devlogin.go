package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	UIDCookie  = "PLANT_UID"
	DefaultUID = "dev"
)

// DevUID resolves the development user: cookie first, then ?uid=, then the
// default user. The cookie is (re)set whenever it was missing.
func DevUID(c echo.Context) string {
	if ck, err := c.Cookie(UIDCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	uid := c.QueryParam("uid")
	if uid == "" {
		uid = DefaultUID
	}
	c.SetCookie(&http.Cookie{Name: UIDCookie, Value: uid, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	return uid
}

func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("uid", DevUID(c))
			return next(c)
		}
	}
}
