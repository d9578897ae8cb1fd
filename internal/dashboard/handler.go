package dashboard

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/textilehub/textilehub/internal/ageing"
	"github.com/textilehub/textilehub/internal/platform/httpx"
)

// Handler serves the dashboard, ageing and drill-down views.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.stats)
	r.Get("/ageing", h.ageing)
	r.Get("/ageing/drilldown", h.drillDown)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("dashboard stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, stats, httpx.Metadata{})
}

func (h *Handler) ageing(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ageing.ListFilter{
		Search:     q.Get("search"),
		HasOverdue: q.Get("hasOverdue") == "true",
		SortBy:     q.Get("sortBy"),
	}
	if raw := q.Get("minTotal"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil || min < 0 {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "minTotal must be a non-negative number")
			return
		}
		filter.MinTotal = min
	}

	view, err := h.service.Ageing(r.Context(), filter)
	if err != nil {
		h.logger.Error("ageing view", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, view, httpx.Metadata{
		RecordCount: len(view.BuyerAgeing) + len(view.MfgAgeing),
		Filters: map[string]any{
			"search":     filter.Search,
			"minTotal":   filter.MinTotal,
			"hasOverdue": filter.HasOverdue,
			"sortBy":     filter.SortBy,
		},
	})
}

func (h *Handler) drillDown(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	firm := q.Get("firm")
	bucket, side, err := ValidateDrillDown(firm, q.Get("bucket"), q.Get("side"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	invoices, err := h.service.DrillDown(r.Context(), firm, bucket, side)
	if err != nil {
		h.logger.Error("ageing drilldown", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, invoices, httpx.Metadata{
		RecordCount: len(invoices),
		Filters: map[string]any{
			"firm":   firm,
			"bucket": string(bucket),
			"side":   string(side),
		},
	})
}
