package invoice

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/textilehub/textilehub/internal/platform/httpx"
)

// Handler serves the invoice list view.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/invoices", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Search:      q.Get("search"),
		Status:      q.Get("status"),
		DueDate:     q.Get("dueDateFilter"),
		AgeingType:  q.Get("ageingType"),
		PaymentType: q.Get("paymentType"),
		Buyer:       q.Get("buyer"),
		Mfg:         q.Get("mfg"),
	}

	invoices, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.Data(w, invoices, httpx.Metadata{RecordCount: len(invoices)})
}
