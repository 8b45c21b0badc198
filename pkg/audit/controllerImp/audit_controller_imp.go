package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/repository"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/httputil"
)

type AuditCtrl struct{ s service.AuditService }

func New(s service.AuditService) *AuditCtrl { return &AuditCtrl{s} }

// List serves GET /audit-logs?plant_id=&entity_type=&action=&limit=.
func (h *AuditCtrl) List(c echo.Context) error {
	f := repository.Filter{
		UserID:     httputil.UID(c),
		EntityType: c.QueryParam("entity_type"),
		Action:     c.QueryParam("action"),
	}
	if v := c.QueryParam("plant_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			return httputil.Error(c, http.StatusBadRequest, "invalid plant_id")
		}
		pid := uint(id)
		f.PlantID = &pid
	}
	return h.list(c, f)
}

// ListByPlant serves GET /plants/:id/audit-logs.
func (h *AuditCtrl) ListByPlant(c echo.Context) error {
	pid, err := httputil.ParseID(c, "id")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	return h.list(c, repository.Filter{UserID: httputil.UID(c), PlantID: &pid, EntityType: c.QueryParam("entity_type")})
}

func (h *AuditCtrl) list(c echo.Context, f repository.Filter) error {
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return httputil.Error(c, http.StatusBadRequest, "invalid limit")
		}
		f.Limit = n
	}
	out, err := h.s.List(f)
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}
