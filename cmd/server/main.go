package main

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/Willysmile/Gestion-des-plantes-sub001/config"
	"github.com/Willysmile/Gestion-des-plantes-sub001/database"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/logging"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/metrics"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/middleware"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/season"
	"github.com/Willysmile/Gestion-des-plantes-sub001/router"

	// Audit
	auditCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/controllerImp"
	auditRepoImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/repositoryImp"
	auditSvcImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/audit/serviceImp"

	// Auth
	authCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/auth/controllerImp"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/auth/token"

	// Plant
	plantCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/controllerImp"
	plantRepoImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/repositoryImp"
	plantSvcImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/plant/serviceImp"

	// Care
	careCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/care/controllerImp"
	careRepoImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/care/repositoryImp"
	careSvcImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/care/serviceImp"

	// Tag
	tagCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/tag/controllerImp"
	tagRepoImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/tag/repositoryImp"
	tagSvcImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/tag/serviceImp"

	// Photo
	photoCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/photo/controllerImp"
	photoRepoImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/photo/repositoryImp"
	photoSvcImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/photo/serviceImp"

	// Guide
	guideCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/guide/controllerImp"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/guide/embedder"
	guideRepoImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/guide/repositoryImp"
	guideSvcImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/guide/serviceImp"

	// Export, display, health
	displayCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/display/controllerImp"
	exportCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/export/controllerImp"
	healthCtrlImp "github.com/Willysmile/Gestion-des-plantes-sub001/pkg/health/controllerImp"
)

const tokenTTL = 30 * 24 * time.Hour

// newServer wires repositories, services and controllers onto a fresh echo
// instance.
func newServer(cfg config.AppConfig, db *gorm.DB, rules season.Rules) *echo.Echo {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.Timezone).Msg("unknown timezone, using local")
		loc = time.Local
	}

	e := echo.New()
	e.HideBanner = true
	if cfg.TrustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	} else {
		e.IPExtractor = echo.ExtractIPDirect()
	}
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(metrics.Middleware())
	if cfg.RateLimit > 0 {
		e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))
	}
	e.Static("/uploads", cfg.UploadDir)

	// Audit
	auditSvc := auditSvcImp.NewAuditService(auditRepoImp.New(db))

	// Tag + Plant (plants keep their automatic tags in sync)
	tagSvc := tagSvcImp.NewTagService(tagRepoImp.New(db))
	plantSvc := plantSvcImp.NewPlantService(plantRepoImp.New(db), rules, tagSvc)

	// Care, Photo, Guide
	careSvc := careSvcImp.NewCareService(careRepoImp.New(db), plantSvc)
	photoSvc := photoSvcImp.NewPhotoService(photoRepoImp.New(db), cfg.UploadDir, cfg.PhotoMaxBytes)
	guideSvc := guideSvcImp.New(guideRepoImp.New(db), cfg.GuideAllowedDomains, cfg.GuideMaxBytes, nil)
	if emb := embedder.New(cfg.EmbEndpoint, cfg.EmbAPIKey, cfg.EmbModel); emb != nil {
		guideSvc.WithEmbedder(emb)
	}

	iss := token.NewIssuer(cfg.JWTSecret, tokenTTL)

	return router.New(e, middleware.Auth(iss, cfg.DevLogin), cfg.DevLogin, router.Controllers{
		Auth:    authCtrlImp.NewAuthController(iss),
		Health:  healthCtrlImp.NewHealthCtrl(db, cfg.UploadDir),
		Plant:   plantCtrlImp.New(plantSvc, tagSvc, careSvc, photoSvc, auditSvc, loc),
		Care:    careCtrlImp.New(careSvc, plantSvc, auditSvc, loc),
		Tag:     tagCtrlImp.New(tagSvc, plantSvc, auditSvc),
		Photo:   photoCtrlImp.New(photoSvc, plantSvc, auditSvc),
		Audit:   auditCtrlImp.New(auditSvc),
		Guide:   guideCtrlImp.New(guideSvc, plantSvc, auditSvc),
		Export:  exportCtrlImp.New(plantSvc, careSvc, tagSvc, loc),
		Display: displayCtrlImp.New(),
	})
}

func main() {
	// 1) Config + logging
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if !cfg.DevLogin && cfg.JWTSecret == "" {
		log.Fatal().Msg("DEV_LOGIN is off and JWT_SECRET is empty: nobody could sign in")
	}

	// 2) DB (sqlite) + automigrate + seed
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Season rules
	rules, err := season.LoadFromFiles(cfg.Hemisphere, cfg.SeasonCSV, cfg.SeasonXLSX)
	if err != nil {
		log.Warn().Err(err).Msg("season rules: using built-in defaults where files failed")
	}

	// 4) Uploads + metrics
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("upload dir")
	}
	metrics.Init(db)

	// 5) Start
	e := newServer(cfg, db, rules)
	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
