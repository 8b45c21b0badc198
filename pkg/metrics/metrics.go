package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Willysmile/Gestion-des-plantes-sub001/entities"
)

const metricPrefix = "plantes_"

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	careEventsRecorded *prometheus.CounterVec
	photosUploaded     prometheus.Counter
	guidesIngested     *prometheus.CounterVec
)

// Init registers the metrics on the default registry. db backs the row-count
// gauges and may be nil.
func Init(db *gorm.DB) {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)
		careEventsRecorded = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "care_events_recorded_total",
				Help: "Care events recorded by kind",
			},
			[]string{"kind"},
		)
		photosUploaded = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "photos_uploaded_total",
				Help: "Total uploaded photos",
			},
		)
		guidesIngested = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "guides_ingested_total",
				Help: "Care guides ingested by source",
			},
			[]string{"source"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			careEventsRecorded,
			photosUploaded,
			guidesIngested,
		)

		if db != nil {
			registerDBMetrics(db)
		}
	})
}

func registerDBMetrics(db *gorm.DB) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "plants",
			Help: "Plants that are not archived",
		},
		func() float64 {
			return queryCount(db.Model(&entities.Plant{}).Where("archived = ?", false))
		},
	))
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "diseases_open",
			Help: "Disease events not yet resolved",
		},
		func() float64 {
			return queryCount(db.Model(&entities.CareEvent{}).Where("kind = ? AND resolved = ?", entities.CareDisease, false))
		},
	))
}

func queryCount(q *gorm.DB) float64 {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		log.Warn().Err(err).Msg("metrics query failed")
		return 0
	}
	return float64(n)
}

// IncCareEvent counts one recorded care event.
func IncCareEvent(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	if careEventsRecorded != nil {
		careEventsRecorded.WithLabelValues(kind).Inc()
	}
}

func IncPhotoUploaded() {
	if photosUploaded != nil {
		photosUploaded.Inc()
	}
}

// IncGuideIngested counts an ingested guide; source is "text" or "url".
func IncGuideIngested(source string) {
	if guidesIngested != nil {
		guidesIngested.WithLabelValues(source).Inc()
	}
}

// ObserveRequest records one served request. route is the echo route
// pattern, not the raw path, to keep label cardinality bounded.
func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
	}
}

// Middleware feeds ObserveRequest.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			ObserveRequest(c.Request().Method, c.Path(), status, time.Since(start))
			return err
		}
	}
}
