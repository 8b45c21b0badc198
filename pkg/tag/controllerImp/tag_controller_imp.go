package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit"
	auditsvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/httputil"
	plantsvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/tag/service"
)

type TagCtrl struct {
	s      service.TagService
	plants plantsvc.PlantService
	audit  auditsvc.AuditService
}

func New(s service.TagService, plants plantsvc.PlantService, a auditsvc.AuditService) *TagCtrl {
	return &TagCtrl{s: s, plants: plants, audit: a}
}

func tagError(c echo.Context, err error, what string) error {
	switch {
	case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrAutomaticCategory):
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicate):
		return httputil.Error(c, http.StatusConflict, err.Error())
	}
	return httputil.StoreError(c, err, what)
}

func (h *TagCtrl) ListCategories(c echo.Context) error {
	out, err := h.s.ListCategories()
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TagCtrl) CreateCategory(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return httputil.Error(c, http.StatusBadRequest, "bad json")
	}
	out, err := h.s.CreateCategory(req.Name)
	if err != nil {
		return tagError(c, err, "category")
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionCreate, "category", out.CategoryID, nil,
		map[string]any{"name": out.Name}))
	return c.JSON(http.StatusCreated, out)
}

// ListTags serves GET /tags?category_id=.
func (h *TagCtrl) ListTags(c echo.Context) error {
	var cat *uint
	if v := c.QueryParam("category_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return httputil.Error(c, http.StatusBadRequest, "invalid category_id")
		}
		id := uint(n)
		cat = &id
	}
	out, err := h.s.ListTags(cat)
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TagCtrl) CreateTag(c echo.Context) error {
	var req struct {
		Name       string `json:"name"`
		CategoryID *uint  `json:"category_id"`
	}
	if err := c.Bind(&req); err != nil {
		return httputil.Error(c, http.StatusBadRequest, "bad json")
	}
	out, err := h.s.CreateTag(req.Name, req.CategoryID)
	if err != nil {
		return tagError(c, err, "category")
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionCreate, "tag", out.TagID, nil,
		map[string]any{"name": out.Name}))
	return c.JSON(http.StatusCreated, out)
}

func (h *TagCtrl) DeleteTag(c echo.Context) error {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	if err := h.s.DeleteTag(id); err != nil {
		return tagError(c, err, "tag")
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionDelete, "tag", id, nil, nil))
	return c.NoContent(http.StatusNoContent)
}

func (h *TagCtrl) plantID(c echo.Context) (uint, error) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return 0, httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	if _, err := h.plants.Get(id, httputil.UID(c)); err != nil {
		return 0, httputil.StoreError(c, err, "plant")
	}
	return id, nil
}

// PlantTags serves GET /plants/:id/tags as {automatic, manual}.
func (h *TagCtrl) PlantTags(c echo.Context) error {
	pid, err := h.plantID(c)
	if pid == 0 {
		return err
	}
	groups, err := h.s.PlantTags(pid)
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, groups)
}

func (h *TagCtrl) Attach(c echo.Context) error {
	pid, err := h.plantID(c)
	if pid == 0 {
		return err
	}
	var req struct {
		TagID uint `json:"tag_id"`
	}
	if err := c.Bind(&req); err != nil || req.TagID == 0 {
		return httputil.Error(c, http.StatusBadRequest, "tag_id is required")
	}
	t, err := h.s.Attach(pid, req.TagID)
	if err != nil {
		return tagError(c, err, "tag")
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionAttach, "tag", t.TagID, &pid,
		map[string]any{"name": t.Name}))
	return c.JSON(http.StatusOK, t)
}

// Detach serves DELETE /plants/:id/tags/:tag_id.
func (h *TagCtrl) Detach(c echo.Context) error {
	pid, err := h.plantID(c)
	if pid == 0 {
		return err
	}
	tid, err := httputil.ParseID(c, "tag_id")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	if err := h.s.Detach(pid, tid); err != nil {
		return tagError(c, err, "tag")
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionDetach, "tag", tid, &pid, nil))
	return c.NoContent(http.StatusNoContent)
}
