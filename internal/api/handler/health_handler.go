package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// HealthHandler answers the liveness probe: 200 whenever the process can
// serve a request at all.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessHandler answers the readiness probe by pinging each backing store.
// Any failing dependency degrades the whole report to 503.
type ReadinessHandler struct {
	checks []storeCheck
}

type storeCheck struct {
	name string
	ping func(ctx context.Context) error
}

func NewReadinessHandler(db *mongo.Database, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{checks: []storeCheck{
		{name: "mongodb", ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		}},
		{name: "redis", ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}},
	}}
}

type probeResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessReport struct {
	Status       string                 `json:"status"`
	Dependencies map[string]probeResult `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	report := readinessReport{
		Status:       "ok",
		Dependencies: make(map[string]probeResult, len(h.checks)),
	}
	status := http.StatusOK

	for _, check := range h.checks {
		if err := check.ping(ctx); err != nil {
			report.Dependencies[check.name] = probeResult{Status: "unhealthy", Error: err.Error()}
			report.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		report.Dependencies[check.name] = probeResult{Status: "ok"}
	}

	return c.JSON(status, report)
}
