package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit"
	auditsvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/guide"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/guide/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/httputil"
	plantsvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/service"
)

const defaultK = 6

type GuideCtrl struct {
	s      service.GuideService
	plants plantsvc.PlantService
	audit  auditsvc.AuditService
}

func New(s service.GuideService, plants plantsvc.PlantService, a auditsvc.AuditService) *GuideCtrl {
	return &GuideCtrl{s: s, plants: plants, audit: a}
}

type ingestReq struct {
	Title     string  `json:"title"`
	Species   string  `json:"species"`
	Text      string  `json:"text"`
	SourceURL *string `json:"source_url"`
}

func (h *GuideCtrl) IngestText(c echo.Context) error {
	var req ingestReq
	if err := c.Bind(&req); err != nil {
		return httputil.Error(c, http.StatusBadRequest, "invalid json: "+err.Error())
	}
	src := ""
	if req.SourceURL != nil {
		src = *req.SourceURL
	}
	g, n, err := h.s.Ingest(req.Title, req.Species, req.Text, src)
	switch {
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrTextRequired):
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	case err != nil:
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionImport, "care_guide", g.GuideID, nil,
		map[string]any{"title": g.Title, "chunks": n}))
	return c.JSON(http.StatusCreated, echo.Map{"guide": g, "chunks": n})
}

func (h *GuideCtrl) IngestURL(c echo.Context) error {
	var req struct {
		URL     string `json:"url"`
		Title   string `json:"title"`
		Species string `json:"species"`
	}
	if err := c.Bind(&req); err != nil || req.URL == "" {
		return httputil.Error(c, http.StatusBadRequest, "url required")
	}
	g, n, err := h.s.IngestURL(c.Request().Context(), req.URL, req.Title, req.Species)
	switch {
	case errors.Is(err, service.ErrBadURL), errors.Is(err, service.ErrTextRequired):
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDomainNotAllowed):
		return httputil.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, guide.ErrTooLarge):
		return httputil.Error(c, http.StatusRequestEntityTooLarge, err.Error())
	case err != nil:
		return httputil.Error(c, http.StatusBadGateway, err.Error())
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionImport, "care_guide", g.GuideID, nil,
		map[string]any{"url": g.SourceURL, "chunks": n}))
	return c.JSON(http.StatusCreated, echo.Map{"guide": g, "chunks": n})
}

func (h *GuideCtrl) List(c echo.Context) error {
	out, err := h.s.List()
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GuideCtrl) Delete(c echo.Context) error {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	if err := h.s.Delete(id); err != nil {
		return httputil.StoreError(c, err, "guide")
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionDelete, "care_guide", id, nil, nil))
	return c.NoContent(http.StatusNoContent)
}

func limit(c echo.Context) int {
	if n, err := strconv.Atoi(c.QueryParam("k")); err == nil && n > 0 && n <= 50 {
		return n
	}
	return defaultK
}

// Search serves GET /guides/search?q=&k=.
func (h *GuideCtrl) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return httputil.Error(c, http.StatusBadRequest, "q required")
	}
	out, err := h.s.Search(q, limit(c))
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

// ForPlant serves GET /plants/:id/guides, searching by species and falling
// back to the plant name.
func (h *GuideCtrl) ForPlant(c echo.Context) error {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	p, err := h.plants.Get(id, httputil.UID(c))
	if err != nil {
		return httputil.StoreError(c, err, "plant")
	}
	q := strings.TrimSpace(p.Species)
	if q == "" {
		q = p.Name
	}
	out, err := h.s.Search(q, limit(c))
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"query": q, "hits": out})
}
