package controllerImp

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit"
	auditsvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/service"
	caresvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/care/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/display"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/httputil"
	photosvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/photo/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/repository"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/season"
	tagsvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/tag/service"
)

type PlantCtrl struct {
	s      service.PlantService
	tags   tagsvc.TagService
	care   caresvc.CareService
	photos photosvc.PhotoService
	audit  auditsvc.AuditService
	loc    *time.Location
}

func New(s service.PlantService, tags tagsvc.TagService, care caresvc.CareService, photos photosvc.PhotoService, a auditsvc.AuditService, loc *time.Location) *PlantCtrl {
	if loc == nil {
		loc = time.Local
	}
	return &PlantCtrl{s: s, tags: tags, care: care, photos: photos, audit: a, loc: loc}
}

type createReq struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Family      string `json:"family"`
	Location    string `json:"location"`
	Light       string `json:"light"`
	HealthState string `json:"health_state"`
	AcquiredAt  string `json:"acquired_at"`
	Notes       string `json:"notes"`
}

func plantError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrInvalidSeason),
		errors.Is(err, service.ErrInvalidInterval):
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	return httputil.StoreError(c, err, "plant")
}

func (h *PlantCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return httputil.Error(c, http.StatusBadRequest, "bad json")
	}
	p := &entities.Plant{
		UserID: httputil.UID(c), Name: req.Name, Species: req.Species, Family: req.Family,
		Location: strings.TrimSpace(req.Location), Light: strings.TrimSpace(req.Light),
		HealthState: strings.TrimSpace(req.HealthState), Notes: req.Notes,
	}
	if req.AcquiredAt != "" {
		t, err := httputil.ParseDate(req.AcquiredAt, h.loc)
		if err != nil {
			return httputil.Error(c, http.StatusBadRequest, "invalid acquired_at")
		}
		p.AcquiredAt = &t
	}
	out, err := h.s.Create(p)
	if err != nil {
		return plantError(c, err)
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionCreate, "plant", out.PlantID, &out.PlantID,
		map[string]any{"name": out.Name}))
	return c.JSON(http.StatusCreated, out)
}

func (h *PlantCtrl) Get(c echo.Context) error {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	p, err := h.s.Get(id, httputil.UID(c))
	if err != nil {
		return plantError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// List serves GET /plants?q=&archived=.
func (h *PlantCtrl) List(c echo.Context) error {
	f := repository.ListFilter{Query: c.QueryParam("q")}
	if v := c.QueryParam("archived"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return httputil.Error(c, http.StatusBadRequest, "invalid archived")
		}
		f.Archived = &b
	}
	out, err := h.s.List(httputil.UID(c), f)
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

// plantPatchRequest takes acquired_at as YYYY-MM-DD; "" clears it.
type plantPatchRequest struct {
	service.PlantPatch
	AcquiredAt *string `json:"acquired_at"`
}

func (h *PlantCtrl) Patch(c echo.Context) error {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	var req plantPatchRequest
	if err := c.Bind(&req); err != nil {
		return httputil.Error(c, http.StatusBadRequest, "bad json")
	}
	patch := req.PlantPatch
	if req.AcquiredAt != nil {
		var t time.Time
		if *req.AcquiredAt != "" {
			if t, err = httputil.ParseDate(*req.AcquiredAt, h.loc); err != nil {
				return httputil.Error(c, http.StatusBadRequest, "invalid acquired_at")
			}
		}
		patch.AcquiredAt = &t
	}
	out, err := h.s.UpdatePartial(id, httputil.UID(c), patch)
	if err != nil {
		return plantError(c, err)
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionUpdate, "plant", out.PlantID, &out.PlantID, changed(patch)))
	return c.JSON(http.StatusOK, out)
}

// changed lists the patched field names for the audit trail.
func changed(p service.PlantPatch) map[string]any {
	fields := map[string]bool{
		"name": p.Name != nil, "species": p.Species != nil, "family": p.Family != nil,
		"location": p.Location != nil, "light": p.Light != nil, "health_state": p.HealthState != nil,
		"acquired_at": p.AcquiredAt != nil, "notes": p.Notes != nil, "archived": p.Archived != nil,
	}
	var out []string
	for k, set := range fields {
		if set {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return map[string]any{"fields": out}
}

func (h *PlantCtrl) Delete(c echo.Context) error {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	if err := h.s.Delete(id, httputil.UID(c)); err != nil {
		return plantError(c, err)
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionDelete, "plant", id, &id, nil))
	return c.NoContent(http.StatusNoContent)
}

type overview struct {
	Plant  *entities.Plant               `json:"plant"`
	Tags   display.TagGroups             `json:"tags"`
	Latest map[string]entities.CareEvent `json:"latest"`
	Status []season.Status               `json:"status"`
	Photos []entities.Photo              `json:"photos"`
}

// Overview serves GET /plants/:id/overview: everything the plant page shows
// at once.
func (h *PlantCtrl) Overview(c echo.Context) error {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	p, err := h.s.Get(id, httputil.UID(c))
	if err != nil {
		return plantError(c, err)
	}

	out := overview{Plant: p}
	now := time.Now().In(h.loc)
	var g errgroup.Group
	g.Go(func() (err error) { out.Tags, err = h.tags.PlantTags(id); return })
	g.Go(func() (err error) { out.Latest, err = h.care.Latest(id); return })
	g.Go(func() (err error) { out.Status, err = h.care.Status(id, now); return })
	g.Go(func() (err error) { out.Photos, err = h.photos.List(id); return })
	if err := g.Wait(); err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlantCtrl) Frequencies(c echo.Context) error {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	out, err := h.s.Frequencies(id, httputil.UID(c))
	if err != nil {
		return plantError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// SetFrequency serves PUT /plants/:id/frequencies/:season.
func (h *PlantCtrl) SetFrequency(c echo.Context) error {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	var req season.Frequency
	if err := c.Bind(&req); err != nil {
		return httputil.Error(c, http.StatusBadRequest, "bad json")
	}
	name, err := url.PathUnescape(c.Param("season"))
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, "invalid season")
	}
	out, err := h.s.SetFrequency(id, httputil.UID(c), name, req.WateringDays, req.FertilizingDays)
	if err != nil {
		return plantError(c, err)
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionUpdate, "seasonal_frequency", out.ID, &id,
		map[string]any{"season": out.Season, "watering_days": out.WateringDays, "fertilizing_days": out.FertilizingDays}))
	return c.JSON(http.StatusOK, out)
}
