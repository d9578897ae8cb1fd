package reporthttp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/textilehub/textilehub/internal/ageing"
	"github.com/textilehub/textilehub/internal/platform/httpx"
	"github.com/textilehub/textilehub/internal/reports"
	"github.com/textilehub/textilehub/internal/reports/export"
)

const requestTimeout = 10 * time.Second

// ReportService is the report computation contract used by the handler.
type ReportService interface {
	InvoiceReports(ctx context.Context, q reports.InvoiceQuery) (reports.InvoiceReport, error)
	OrderReports(ctx context.Context, q reports.OrderQuery) (reports.OrderReport, error)
	InvoiceExportRows(ctx context.Context, q reports.InvoiceQuery) ([]reports.ExportRow, error)
	AgeingRecords(ctx context.Context, side string) ([]ageing.Record, error)
}

// Handler serves the report and export endpoints.
type Handler struct {
	logger   *slog.Logger
	service  ReportService
	renderer export.Renderer
	validate *validator.Validate
	bufPool  sync.Pool
	now      func() time.Time
}

// NewHandler constructs the report HTTP handler. The renderer may be nil
// when no PDF backend is configured; the PDF endpoint then answers 503.
func NewHandler(logger *slog.Logger, service ReportService, renderer export.Renderer) *Handler {
	h := &Handler{
		logger:   logger,
		service:  service,
		renderer: renderer,
		validate: validator.New(),
		now:      time.Now,
	}
	h.bufPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

func (h *Handler) parseInvoiceQuery(r *http.Request) (reports.InvoiceQuery, error) {
	qs := r.URL.Query()
	q := reports.InvoiceQuery{
		GroupBy:     qs.Get("groupBy"),
		Filter:      qs.Get("filter"),
		Status:      qs.Get("status"),
		PaymentType: qs.Get("paymentType"),
		Buyer:       qs.Get("buyer"),
		Mfg:         qs.Get("mfg"),
	}.Normalize()
	if err := h.validate.Struct(q); err != nil {
		return reports.InvoiceQuery{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	return q, nil
}

func (h *Handler) parseOrderQuery(r *http.Request) (reports.OrderQuery, error) {
	qs := r.URL.Query()
	q := reports.OrderQuery{
		GroupBy: qs.Get("groupBy"),
		Status:  qs.Get("status"),
		Buyer:   qs.Get("buyer"),
		Mfg:     qs.Get("mfg"),
	}.Normalize()
	if err := h.validate.Struct(q); err != nil {
		return reports.OrderQuery{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
	}
	return q, nil
}

func (h *Handler) handleInvoiceReports(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseInvoiceQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	rep, err := h.service.InvoiceReports(ctx, q)
	if err != nil {
		h.logger.Error("invoice report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, rep, httpx.Metadata{
		GeneratedAt: h.now().UTC(),
		RecordCount: rep.Summary.TotalInvoices,
		Filters:     invoiceFilterEcho(q),
	})
}

func (h *Handler) handleOrderReports(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseOrderQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	rep, err := h.service.OrderReports(ctx, q)
	if err != nil {
		h.logger.Error("order report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Data(w, rep, httpx.Metadata{
		GeneratedAt: h.now().UTC(),
		RecordCount: rep.Summary.TotalOrders,
		Filters:     orderFilterEcho(q),
	})
}

func (h *Handler) handleInvoiceCSV(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseInvoiceQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	rows, err := h.service.InvoiceExportRows(ctx, q)
	if err != nil {
		h.logger.Error("invoice csv failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.bufPool.Put(buf)

	if err := export.WriteInvoiceCSV(buf, rows); err != nil {
		h.logger.Error("invoice csv encode failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", attachment("invoice-report", h.now(), "csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleInvoicePDF(w http.ResponseWriter, r *http.Request) {
	if h.renderer == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "PDF Unavailable", "no pdf backend configured")
		return
	}
	q, err := h.parseInvoiceQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	rep, err := h.service.InvoiceReports(ctx, q)
	if err != nil {
		h.logger.Error("invoice pdf failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	pdf, err := export.RenderInvoicePDF(ctx, h.renderer, export.InvoicePDFPayload{
		Title:       "Invoice Report",
		GeneratedAt: h.now(),
		Summary:     rep.Summary,
		Rows:        reports.FlattenInvoices(rep),
	})
	if err != nil {
		h.logger.Error("invoice pdf render failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "PDF Render Failed", "the pdf backend did not produce a document")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment("invoice-report", h.now(), "pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) handleAgeingCSV(w http.ResponseWriter, r *http.Request) {
	side := r.URL.Query().Get("side")
	switch side {
	case "", "buyer", "mfg":
	default:
		httpx.RespondError(w, fmt.Errorf("%w: unknown side %q", httpx.ErrValidation, side))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	records, err := h.service.AgeingRecords(ctx, side)
	if err != nil {
		h.logger.Error("ageing csv failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.bufPool.Put(buf)

	if err := export.WriteAgeingCSV(buf, records); err != nil {
		h.logger.Error("ageing csv encode failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", attachment("ageing-report", h.now(), "csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleOrderCSV(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseOrderQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	rep, err := h.service.OrderReports(ctx, q)
	if err != nil {
		h.logger.Error("order csv failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.bufPool.Put(buf)

	if err := export.WriteOrderCSV(buf, rep); err != nil {
		h.logger.Error("order csv encode failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", attachment("order-report", h.now(), "csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func attachment(name string, at time.Time, ext string) string {
	return fmt.Sprintf("attachment; filename=%s-%s.%s", name, at.Format("2006-01-02"), ext)
}

func invoiceFilterEcho(q reports.InvoiceQuery) map[string]any {
	echo := map[string]any{
		"groupBy":     q.GroupBy,
		"filter":      q.Filter,
		"status":      q.Status,
		"paymentType": q.PaymentType,
	}
	if q.Buyer != "" {
		echo["buyer"] = q.Buyer
	}
	if q.Mfg != "" {
		echo["mfg"] = q.Mfg
	}
	return echo
}

func orderFilterEcho(q reports.OrderQuery) map[string]any {
	echo := map[string]any{
		"groupBy": q.GroupBy,
		"status":  q.Status,
	}
	if q.Buyer != "" {
		echo["buyer"] = q.Buyer
	}
	if q.Mfg != "" {
		echo["mfg"] = q.Mfg
	}
	return echo
}
