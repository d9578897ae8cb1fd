package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/textilehub/textilehub/internal/reports"
)

// Renderer converts HTML into PDF bytes. Satisfied by the Gotenberg
// client.
type Renderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// InvoicePDFPayload carries everything the invoice report PDF shows.
type InvoicePDFPayload struct {
	Title       string
	GeneratedAt time.Time
	Summary     reports.InvoiceSummary
	Rows        []reports.ExportRow
}

// RenderInvoicePDF builds the report HTML and hands it to the renderer.
func RenderInvoicePDF(ctx context.Context, r Renderer, payload InvoicePDFPayload) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf renderer not initialised")
	}
	return r.RenderHTML(ctx, buildInvoiceHTML(payload))
}

func buildInvoiceHTML(payload InvoicePDFPayload) string {
	var b strings.Builder
	b.WriteString("<html><head><meta charset=\"utf-8\"><style>")
	b.WriteString("body{font-family:sans-serif;margin:24px;}h1{font-size:20px;}table{width:100%;border-collapse:collapse;margin-bottom:16px;}th,td{border:1px solid #ddd;padding:6px;text-align:right;}th{text-align:left;background:#f5f5f5;}section{margin-bottom:24px;} .firm{text-align:left;} .overdue{color:#b00020;}")
	b.WriteString("</style></head><body>")

	title := payload.Title
	if title == "" {
		title = "Invoice Report"
	}
	b.WriteString(fmt.Sprintf("<h1>%s</h1>", templateEscape(title)))
	b.WriteString(fmt.Sprintf("<p>Generated %s</p>", payload.GeneratedAt.Format("02-01-2006 15:04")))

	b.WriteString("<section><h2>Summary</h2><table><tbody>")
	writeSummaryRow(&b, "Buyers", formatInt(payload.Summary.TotalBuyers))
	writeSummaryRow(&b, "Manufacturers", formatInt(payload.Summary.TotalMfgs))
	writeSummaryRow(&b, "Invoices", formatInt(payload.Summary.TotalInvoices))
	writeSummaryRow(&b, "Total Amount", formatAmount(payload.Summary.TotalAmount))
	writeSummaryRow(&b, "Overdue", formatAmount(payload.Summary.TotalOverdue))
	writeSummaryRow(&b, "Due Today", formatAmount(payload.Summary.TotalDueToday))
	writeSummaryRow(&b, "Due in 1-3 Days", formatAmount(payload.Summary.TotalDueSoon))
	b.WriteString("</tbody></table></section>")

	if len(payload.Rows) > 0 {
		b.WriteString("<section><h2>Invoices</h2><table><thead><tr>")
		for _, h := range []string{"SR", "Invoice", "Date", "Mfg. Firm", "Credit Period", "Due Date", "Amount", "Payment", "Status", "Ageing"} {
			b.WriteString("<th>")
			b.WriteString(templateEscape(h))
			b.WriteString("</th>")
		}
		b.WriteString("</tr></thead><tbody>")
		for _, row := range payload.Rows {
			cls := ""
			if row.Ageing > 0 && row.Status == "UNPAID" {
				cls = " class=\"overdue\""
			}
			b.WriteString(fmt.Sprintf("<tr%s>", cls))
			writeCell(&b, formatInt(row.SR), false)
			writeCell(&b, row.Invoice, true)
			writeCell(&b, row.Date, false)
			writeCell(&b, row.Mfg, true)
			writeCell(&b, formatInt(row.CreditPeriod), false)
			writeCell(&b, row.Due, false)
			writeCell(&b, formatAmount(row.Amount), false)
			writeCell(&b, row.PaymentType, true)
			writeCell(&b, string(row.Status), true)
			writeCell(&b, formatInt(row.Ageing), false)
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table></section>")
	}

	b.WriteString("</body></html>")
	return b.String()
}

func writeSummaryRow(b *strings.Builder, label, value string) {
	b.WriteString("<tr><td class=\"firm\">")
	b.WriteString(templateEscape(label))
	b.WriteString("</td><td>")
	b.WriteString(templateEscape(value))
	b.WriteString("</td></tr>")
}

func writeCell(b *strings.Builder, value string, left bool) {
	if left {
		b.WriteString("<td class=\"firm\">")
	} else {
		b.WriteString("<td>")
	}
	b.WriteString(templateEscape(value))
	b.WriteString("</td>")
}

func templateEscape(v string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(v)
}
