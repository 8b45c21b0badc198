package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/auth/token"
)

// Auth sets "uid" from an "Authorization: Bearer" token. Without a token the
// request falls back to the development user when dev is true, and gets 401
// otherwise. A present but invalid token is always rejected. A nil issuer
// disables bearer auth.
func Auth(iss *token.Issuer, dev bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			if raw, ok := strings.CutPrefix(h, "Bearer "); ok && iss != nil {
				uid, err := iss.Parse(strings.TrimSpace(raw))
				if err != nil {
					log.Debug().Err(err).Str("ip", c.RealIP()).Msg("[auth] rejected token")
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
				}
				c.Set("uid", uid)
				return next(c)
			}
			if !dev {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			c.Set("uid", DevUID(c))
			return next(c)
		}
	}
}
