package reporthttp

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers report routes on the provided router. Export
// endpoints get a tighter rate limit; a PDF render holds a Chromium
// worker on the Gotenberg side.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/invoices", h.handleInvoiceReports)
	r.Get("/reports/orders", h.handleOrderReports)

	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Get("/reports/invoices/export.csv", h.handleInvoiceCSV)
		r.Get("/reports/invoices/export.pdf", h.handleInvoicePDF)
		r.Get("/reports/ageing/export.csv", h.handleAgeingCSV)
		r.Get("/reports/orders/export.csv", h.handleOrderCSV)
	})
}
