package controllerImp

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit"
	auditsvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/care/repository"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/care/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/httputil"
	plantsvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/service"
)

type CareCtrl struct {
	s      service.CareService
	plants plantsvc.PlantService
	audit  auditsvc.AuditService
	loc    *time.Location
}

func New(s service.CareService, plants plantsvc.PlantService, a auditsvc.AuditService, loc *time.Location) *CareCtrl {
	if loc == nil {
		loc = time.Local
	}
	return &CareCtrl{s: s, plants: plants, audit: a, loc: loc}
}

type recordReq struct {
	Kind      string   `json:"kind"`
	Date      string   `json:"date"`
	Amount    *float64 `json:"amount"`
	Unit      string   `json:"unit"`
	Product   string   `json:"product"`
	PotSize   string   `json:"pot_size"`
	Substrate string   `json:"substrate"`
	Disease   string   `json:"disease"`
	Treatment string   `json:"treatment"`
	Resolved  bool     `json:"resolved"`
	Notes     string   `json:"notes"`
}

func (h *CareCtrl) ownedPlant(c echo.Context) (*entities.Plant, error) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return nil, httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	p, err := h.plants.Get(id, httputil.UID(c))
	if err != nil {
		return nil, httputil.StoreError(c, err, "plant")
	}
	return p, nil
}

// ownedEvent loads an event and checks its plant belongs to the caller.
func (h *CareCtrl) ownedEvent(c echo.Context) (*entities.CareEvent, error) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return nil, httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	e, err := h.s.Get(id)
	if err != nil {
		return nil, httputil.StoreError(c, err, "care event")
	}
	if _, err := h.plants.Get(e.PlantID, httputil.UID(c)); err != nil {
		return nil, httputil.StoreError(c, err, "care event")
	}
	return e, nil
}

func validationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidKind), errors.Is(err, service.ErrDiseaseRequired),
		errors.Is(err, service.ErrNegativeAmount), errors.Is(err, service.ErrInvalidDate):
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	return httputil.StoreError(c, err, "care event")
}

func (h *CareCtrl) Record(c echo.Context) error {
	p, err := h.ownedPlant(c)
	if p == nil {
		return err
	}
	var req recordReq
	if err := c.Bind(&req); err != nil {
		return httputil.Error(c, http.StatusBadRequest, "bad json")
	}
	e := &entities.CareEvent{
		Kind: req.Kind, Amount: req.Amount, Unit: req.Unit, Product: req.Product,
		PotSize: req.PotSize, Substrate: req.Substrate, Disease: req.Disease,
		Treatment: req.Treatment, Resolved: req.Resolved, Notes: req.Notes,
	}
	if req.Date != "" {
		d, err := httputil.ParseDate(req.Date, h.loc)
		if err != nil {
			return httputil.Error(c, http.StatusBadRequest, "invalid date")
		}
		e.Date = d
	}
	out, err := h.s.Record(p.PlantID, e)
	if err != nil {
		return validationError(c, err)
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionCreate, "care_event", out.EventID, &p.PlantID,
		map[string]any{"kind": out.Kind, "dose": out.DoseLabel}))
	return c.JSON(http.StatusCreated, out)
}

// History serves GET /plants/:id/care-events?kind=&from=&to=. to is inclusive.
func (h *CareCtrl) History(c echo.Context) error {
	p, err := h.ownedPlant(c)
	if p == nil {
		return err
	}
	f := repository.Filter{Kind: c.QueryParam("kind")}
	if v := c.QueryParam("from"); v != "" {
		t, err := httputil.ParseDate(v, h.loc)
		if err != nil {
			return httputil.Error(c, http.StatusBadRequest, "invalid from")
		}
		f.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := httputil.ParseDate(v, h.loc)
		if err != nil {
			return httputil.Error(c, http.StatusBadRequest, "invalid to")
		}
		t = t.AddDate(0, 0, 1)
		f.To = &t
	}
	out, err := h.s.History(p.PlantID, f)
	if err != nil {
		return validationError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CareCtrl) Get(c echo.Context) error {
	e, err := h.ownedEvent(c)
	if e == nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

type carePatchRequest struct {
	service.CarePatch
	Date *string `json:"date"`
}

func (h *CareCtrl) Patch(c echo.Context) error {
	e, err := h.ownedEvent(c)
	if e == nil {
		return err
	}
	var req carePatchRequest
	if err := c.Bind(&req); err != nil {
		return httputil.Error(c, http.StatusBadRequest, "bad json")
	}
	if req.Date != nil {
		d, err := httputil.ParseDate(*req.Date, h.loc)
		if err != nil {
			return httputil.Error(c, http.StatusBadRequest, "invalid date")
		}
		req.CarePatch.Date = &d
	}
	out, err := h.s.UpdatePartial(e.EventID, req.CarePatch)
	if err != nil {
		return validationError(c, err)
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionUpdate, "care_event", out.EventID, &out.PlantID, nil))
	return c.JSON(http.StatusOK, out)
}

func (h *CareCtrl) Delete(c echo.Context) error {
	e, err := h.ownedEvent(c)
	if e == nil {
		return err
	}
	if err := h.s.Delete(e.EventID); err != nil {
		return httputil.StoreError(c, err, "care event")
	}
	h.audit.Record(c.Request().Context(), audit.Entry(c, audit.ActionDelete, "care_event", e.EventID, &e.PlantID,
		map[string]any{"kind": e.Kind}))
	return c.NoContent(http.StatusNoContent)
}

// Reminders serves GET /reminders: due and overdue actions, most overdue first.
func (h *CareCtrl) Reminders(c echo.Context) error {
	out, err := h.s.Reminders(httputil.UID(c), time.Now().In(h.loc))
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}
