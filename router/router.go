package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	auditCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/controllerImp"
	authCtrl "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/auth/controller"
	careCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/care/controllerImp"
	displayCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/display/controllerImp"
	exportCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/export/controllerImp"
	guideCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/guide/controllerImp"
	photoCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/photo/controllerImp"
	plantCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/controllerImp"
	tagCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/tag/controllerImp"
)

type Controllers struct {
	Auth    authCtrl.AuthController
	Health  interface{ Health(echo.Context) error }
	Plant   *plantCtrlImp.PlantCtrl
	Care    *careCtrlImp.CareCtrl
	Tag     *tagCtrlImp.TagCtrl
	Photo   *photoCtrlImp.PhotoCtrl
	Audit   *auditCtrlImp.AuditCtrl
	Guide   *guideCtrlImp.GuideCtrl
	Export  *exportCtrlImp.ExportCtrl
	Display *displayCtrlImp.DisplayCtrl
}

// New registers every route. auth guards the API group; /health, /metrics
// and /devlogin stay public. devLogin exposes /devlogin.
func New(e *echo.Echo, auth echo.MiddlewareFunc, devLogin bool, c Controllers) *echo.Echo {
	e.GET("/health", c.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	if devLogin {
		e.GET("/devlogin", c.Auth.DevLogin)
	}

	api := e.Group("", auth)
	api.GET("/whoami", c.Auth.WhoAmI)

	// plants
	api.GET("/plants", c.Plant.List)
	api.POST("/plants", c.Plant.Create)
	api.GET("/plants/:id", c.Plant.Get)
	api.PATCH("/plants/:id", c.Plant.Patch)
	api.DELETE("/plants/:id", c.Plant.Delete)
	api.GET("/plants/:id/overview", c.Plant.Overview)
	api.GET("/plants/:id/frequencies", c.Plant.Frequencies)
	api.PUT("/plants/:id/frequencies/:season", c.Plant.SetFrequency)

	// care
	api.POST("/plants/:id/care-events", c.Care.Record)
	api.GET("/plants/:id/care-events", c.Care.History)
	api.GET("/care-events/:id", c.Care.Get)
	api.PATCH("/care-events/:id", c.Care.Patch)
	api.DELETE("/care-events/:id", c.Care.Delete)
	api.GET("/reminders", c.Care.Reminders)
	api.GET("/plants/:id/export.xlsx", c.Export.History)
	api.GET("/plants/:id/care-sheet.pdf", c.Export.CareSheet)

	// tags
	api.GET("/categories", c.Tag.ListCategories)
	api.POST("/categories", c.Tag.CreateCategory)
	api.GET("/tags", c.Tag.ListTags)
	api.POST("/tags", c.Tag.CreateTag)
	api.DELETE("/tags/:id", c.Tag.DeleteTag)
	api.GET("/plants/:id/tags", c.Tag.PlantTags)
	api.POST("/plants/:id/tags", c.Tag.Attach)
	api.DELETE("/plants/:id/tags/:tag_id", c.Tag.Detach)

	// photos
	api.GET("/plants/:id/photos", c.Photo.List)
	api.POST("/plants/:id/photos", c.Photo.Upload)
	api.PUT("/photos/:id/main", c.Photo.SetMain)
	api.PATCH("/photos/:id", c.Photo.PatchCaption)
	api.DELETE("/photos/:id", c.Photo.Delete)

	// audit
	api.GET("/audit-logs", c.Audit.List)
	api.GET("/plants/:id/audit-logs", c.Audit.ListByPlant)

	// guides
	api.GET("/guides", c.Guide.List)
	api.POST("/guides", c.Guide.IngestText)
	api.POST("/guides/url", c.Guide.IngestURL)
	api.DELETE("/guides/:id", c.Guide.Delete)
	api.GET("/guides/search", c.Guide.Search)
	api.GET("/plants/:id/guides", c.Guide.ForPlant)

	api.POST("/display/unit-label", c.Display.UnitLabel)
	return e
}
