package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit"
	auditsvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/httputil"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/photo/service"
	plantsvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/service"
)

type PhotoCtrl struct {
	s      service.PhotoService
	plants plantsvc.PlantService
	audit  auditsvc.AuditService
}

func New(s service.PhotoService, plants plantsvc.PlantService, a auditsvc.AuditService) *PhotoCtrl {
	return &PhotoCtrl{s: s, plants: plants, audit: a}
}

func (h *PhotoCtrl) plantID(c echo.Context) (uint, error) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return 0, httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	if _, err := h.plants.Get(id, httputil.UID(c)); err != nil {
		return 0, httputil.StoreError(c, err, "plant")
	}
	return id, nil
}

func (h *PhotoCtrl) ownedPhoto(c echo.Context, param string) (*entities.Photo, error) {
	id, err := httputil.ParseID(c, param)
	if err != nil {
		return nil, httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	p, err := h.s.Get(id)
	if err != nil {
		return nil, httputil.StoreError(c, err, "photo")
	}
	if _, err := h.plants.Get(p.PlantID, httputil.UID(c)); err != nil {
		return nil, httputil.StoreError(c, err, "photo")
	}
	return p, nil
}

// Upload serves POST /plants/:id/photos (multipart: file, caption).
func (h *PhotoCtrl) Upload(c echo.Context) error {
	pid, err := h.plantID(c)
	if pid == 0 {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	defer f.Close()

	p, err := h.s.Upload(pid, service.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, c.FormValue("caption"))
	switch {
	case errors.Is(err, service.ErrNotImage):
		return httputil.Error(c, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, service.ErrTooLarge):
		return httputil.Error(c, http.StatusRequestEntityTooLarge, err.Error())
	case err != nil:
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionUpload, "photo", p.PhotoID, &pid,
		map[string]any{"file": p.OriginalName, "size": p.Size}))
	return c.JSON(http.StatusCreated, p)
}

func (h *PhotoCtrl) List(c echo.Context) error {
	pid, err := h.plantID(c)
	if pid == 0 {
		return err
	}
	out, err := h.s.List(pid)
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

// SetMain serves PUT /photos/:id/main.
func (h *PhotoCtrl) SetMain(c echo.Context) error {
	p, err := h.ownedPhoto(c, "id")
	if p == nil {
		return err
	}
	if err := h.s.SetMain(p.PlantID, p.PhotoID); err != nil {
		return httputil.StoreError(c, err, "photo")
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionUpdate, "photo", p.PhotoID, &p.PlantID,
		map[string]any{"is_main": true}))
	return c.JSON(http.StatusOK, echo.Map{"photo_id": p.PhotoID, "is_main": true})
}

func (h *PhotoCtrl) PatchCaption(c echo.Context) error {
	p, err := h.ownedPhoto(c, "id")
	if p == nil {
		return err
	}
	var req struct {
		Caption string `json:"caption"`
	}
	if err := c.Bind(&req); err != nil {
		return httputil.Error(c, http.StatusBadRequest, "bad json")
	}
	out, err := h.s.UpdateCaption(p.PhotoID, req.Caption)
	if err != nil {
		return httputil.StoreError(c, err, "photo")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PhotoCtrl) Delete(c echo.Context) error {
	p, err := h.ownedPhoto(c, "id")
	if p == nil {
		return err
	}
	if err := h.s.Delete(p.PhotoID); err != nil {
		return httputil.StoreError(c, err, "photo")
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionDelete, "photo", p.PhotoID, &p.PlantID,
		map[string]any{"file": p.OriginalName}))
	return c.NoContent(http.StatusNoContent)
}
