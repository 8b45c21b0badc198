package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/auth/controller"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/auth/token"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/middleware"
)

type authCtrl struct{ iss *token.Issuer }

// NewAuthController serves the dev login; iss may be nil when no secret is set.
func NewAuthController(iss *token.Issuer) controller.AuthController { return &authCtrl{iss} }

// DevLogin sets the uid cookie and, with a signing secret, also returns a
// bearer token for that uid.
func (h *authCtrl) DevLogin(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		uid = middleware.DefaultUID
	}
	c.SetCookie(&http.Cookie{Name: middleware.UIDCookie, Value: uid, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	out := map[string]string{"uid": uid}
	if h.iss != nil {
		tok, err := h.iss.Issue(uid)
		if err != nil {
			log.Error().Err(err).Msg("[auth] issue token")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "cannot issue token"})
		}
		out["token"] = tok
	}
	return c.JSON(http.StatusOK, out)
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	return c.JSON(http.StatusOK, map[string]string{"uid": uid})
}
