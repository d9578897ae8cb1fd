package sauda

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/textilehub/textilehub/internal/platform/httpx"
)

// Handler serves the sauda order list view.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers sauda routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/orders", h.list)
}

type orderListPayload struct {
	PendingSauda   []Order `json:"pendingSauda"`
	CompletedSauda []Order `json:"completedSauda"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Status: q.Get("status"),
		Buyer:  q.Get("buyer"),
		Mfg:    q.Get("mfg"),
	}
	if raw := q.Get("fulfillmentBelow"); raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "fulfillmentBelow must be an integer")
			return
		}
		filter.FulfillmentBelow = threshold
	}

	orders, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list orders", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	payload := orderListPayload{PendingSauda: []Order{}, CompletedSauda: []Order{}}
	for _, o := range orders {
		if o.Status == StatusCompleted {
			payload.CompletedSauda = append(payload.CompletedSauda, o)
		} else {
			payload.PendingSauda = append(payload.PendingSauda, o)
		}
	}

	httpx.Data(w, payload, httpx.Metadata{RecordCount: len(orders)})
}
