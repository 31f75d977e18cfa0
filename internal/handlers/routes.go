package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jjenkins/mateng/internal/admitcard"
)

// Pinger reports whether the application data source is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators the routes need
type Dependencies struct {
	Fetcher  admitcard.Fetcher
	Recorder admitcard.Recorder
	Pinger   Pinger
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// Register mounts every route on app
func Register(app *fiber.App, d Dependencies) {
	app.Get("/", HomeHandler())
	app.Get("/achievements/:id", AchievementRedirectHandler())

	// Vertical routes
	for _, slug := range []string{"delivery", "education", "marketplace"} {
		app.Get("/"+slug, VerticalHandler(slug))
	}

	// Admit card routes
	app.Get("/admit-card", AdmitCardFormHandler())
	app.Post("/admit-card", AdmitCardLookupHandler(d.Fetcher, d.Recorder, d.Logger))
	app.Get("/admit-card/print", AdmitCardPrintHandler(d.Fetcher, d.Recorder, d.Logger))

	app.Get("/healthz", HealthHandler(d.Pinger))
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
}

func HealthHandler(pinger Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if pinger != nil {
			if err := pinger.Ping(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
