package export

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/textilehub/textilehub/internal/ageing"
	"github.com/textilehub/textilehub/internal/reports"
)

// WriteInvoiceCSV serialises the flattened invoice report. Row order is
// fixed by the flattener, so the same report always produces the same
// bytes.
func WriteInvoiceCSV(w io.Writer, rows []reports.ExportRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		"SR NO", "INVOICE", "DATE", "MFG. FIRM",
		"CREDIT PERIOD", "DUE DATE", "AMOUNT",
		"PAYMENT TYPE", "STATUS", "AGEING",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			formatInt(row.SR),
			row.Invoice,
			row.Date,
			row.Mfg,
			formatInt(row.CreditPeriod),
			row.Due,
			formatFloat(row.Amount),
			row.PaymentType,
			string(row.Status),
			formatInt(row.Ageing),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteAgeingCSV emits the per-firm ageing breakdown as CSV, one row per
// firm sorted by name.
func WriteAgeingCSV(w io.Writer, records []ageing.Record) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	sorted := make([]ageing.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Firm < sorted[j].Firm })

	if err := writer.Write([]string{
		"FIRM", "NOT DUE", "0-7 DAYS", "8-30 DAYS", "31-200 DAYS", "TOTAL",
	}); err != nil {
		return err
	}
	for _, rec := range sorted {
		if err := writer.Write([]string{
			rec.Firm,
			formatFloat(rec.NotDue),
			formatFloat(rec.Days0To7),
			formatFloat(rec.Days8To30),
			formatFloat(rec.Days30To200),
			formatFloat(rec.Total),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteOrderCSV emits the order report groups as CSV, sorted by firm.
func WriteOrderCSV(w io.Writer, rep reports.OrderReport) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	firms := make([]string, 0, len(rep.BuyerWise))
	for firm := range rep.BuyerWise {
		firms = append(firms, firm)
	}
	sort.Strings(firms)

	if err := writer.Write([]string{"BUYER", "ORDERS", "PENDING QTY", "UNIT"}); err != nil {
		return err
	}
	for _, firm := range firms {
		g := rep.BuyerWise[firm]
		if err := writer.Write([]string{
			g.Buyer,
			formatInt(g.TotalOrders),
			formatFloat(g.TotalQuantity),
			g.Unit,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
