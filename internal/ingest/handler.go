package ingest

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/textilehub/textilehub/internal/platform/httpx"
)

const maxSyncBody = 32 << 20

// Handler serves the snapshot sync endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers ingest routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/sync", h.sync)
}

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSyncBody)

	var payload SyncPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	result, err := h.service.Sync(r.Context(), payload)
	if err != nil {
		h.logger.Error("sync snapshots", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.logger.Info("snapshots replaced",
		slog.Int("invoices", result.Invoices),
		slog.Int("pending_orders", result.PendingOrders),
		slog.Int("completed_orders", result.CompletedOrders),
	)
	httpx.Data(w, result, httpx.Metadata{RecordCount: result.Invoices + result.PendingOrders + result.CompletedOrders})
}
