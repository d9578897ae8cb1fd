package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/textilehub/textilehub/internal/dashboard"
	"github.com/textilehub/textilehub/internal/ingest"
	"github.com/textilehub/textilehub/internal/invoice"
	"github.com/textilehub/textilehub/internal/observability"
	reporthttp "github.com/textilehub/textilehub/internal/reports/http"
	"github.com/textilehub/textilehub/internal/sauda"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Metrics          *observability.Metrics
	InvoiceHandler   *invoice.Handler
	SaudaHandler     *sauda.Handler
	DashboardHandler *dashboard.Handler
	ReportHandler    *reporthttp.Handler
	IngestHandler    *ingest.Handler
}

// NewRouter constructs the chi.Router with Texhub defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	if params.Metrics != nil {
		r.Use(params.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/textile", func(r chi.Router) {
		if params.InvoiceHandler != nil {
			params.InvoiceHandler.MountRoutes(r)
		}
		if params.SaudaHandler != nil {
			params.SaudaHandler.MountRoutes(r)
		}
		if params.DashboardHandler != nil {
			params.DashboardHandler.MountRoutes(r)
		}
		if params.ReportHandler != nil {
			params.ReportHandler.MountRoutes(r)
		}
		if params.IngestHandler != nil {
			params.IngestHandler.MountRoutes(r)
		}
	})

	return r
}
