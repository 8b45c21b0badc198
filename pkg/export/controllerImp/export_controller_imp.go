package controllerImp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	carerepo "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/care/repository"
	caresvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/care/service"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/export"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/httputil"
	plantsvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/service"
	tagsvc "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/tag/service"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"

	// sheetEvents caps the history printed on the care sheet.
	sheetEvents = 25
)

type ExportCtrl struct {
	plants plantsvc.PlantService
	care   caresvc.CareService
	tags   tagsvc.TagService
	loc    *time.Location
}

func New(plants plantsvc.PlantService, care caresvc.CareService, tags tagsvc.TagService, loc *time.Location) *ExportCtrl {
	if loc == nil {
		loc = time.Local
	}
	return &ExportCtrl{plants: plants, care: care, tags: tags, loc: loc}
}

func attachment(c echo.Context, name, mime string, b []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, mime, b)
}

// History serves GET /plants/:id/export.xlsx.
func (h *ExportCtrl) History(c echo.Context) error {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	p, err := h.plants.Get(id, httputil.UID(c))
	if err != nil {
		return httputil.StoreError(c, err, "plant")
	}
	events, err := h.care.History(id, carerepo.Filter{Kind: c.QueryParam("kind")})
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	b, err := export.HistoryXLSX(p, events)
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	return attachment(c, fmt.Sprintf("plante-%d-historique.xlsx", id), mimeXLSX, b)
}

// CareSheet serves GET /plants/:id/care-sheet.pdf.
func (h *ExportCtrl) CareSheet(c echo.Context) error {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, err.Error())
	}
	uid := httputil.UID(c)
	p, err := h.plants.Get(id, uid)
	if err != nil {
		return httputil.StoreError(c, err, "plant")
	}
	freqs, err := h.plants.Frequencies(id, uid)
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	groups, err := h.tags.PlantTags(id)
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	events, err := h.care.History(id, carerepo.Filter{})
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	if len(events) > sheetEvents {
		events = events[:sheetEvents]
	}
	b, err := export.CareSheetPDF(p, groups, freqs, events, time.Now().In(h.loc))
	if err != nil {
		return httputil.Error(c, http.StatusInternalServerError, err.Error())
	}
	return attachment(c, fmt.Sprintf("plante-%d-fiche.pdf", id), mimePDF, b)
}
