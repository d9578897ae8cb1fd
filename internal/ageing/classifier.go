// Package ageing stratifies outstanding invoice amounts into fixed
// day-range buckets per counterparty firm.
package ageing

import (
	"github.com/textilehub/textilehub/internal/invoice"
)

// Bucket identifies one of the four ageing windows.
type Bucket string

const (
	BucketNotDue    Bucket = "notDue"
	Bucket0To7      Bucket = "days0_7"
	Bucket8To30     Bucket = "days8_30"
	Bucket30To200   Bucket = "days30_200"
	maxBucketedDays        = 200
)

// BucketFor maps an ageing day count to its bucket. ok is false beyond
// 200 days: those amounts count toward totals but land in no bucket,
// which is what the discrepancy flag on Record surfaces.
func BucketFor(days int) (Bucket, bool) {
	switch {
	case days <= 0:
		return BucketNotDue, true
	case days <= 7:
		return Bucket0To7, true
	case days <= 30:
		return Bucket8To30, true
	case days <= maxBucketedDays:
		return Bucket30To200, true
	}
	return "", false
}

// ParseBucket resolves a bucket name from a drill-down request.
func ParseBucket(s string) (Bucket, bool) {
	switch Bucket(s) {
	case BucketNotDue, Bucket0To7, Bucket8To30, Bucket30To200:
		return Bucket(s), true
	}
	return "", false
}

// InBucket reports whether the invoice's ageing falls in b. Classify and
// the drill-down view both answer through this predicate; they must never
// diverge.
func InBucket(inv invoice.Invoice, b Bucket) bool {
	got, ok := BucketFor(inv.Ageing)
	return ok && got == b
}

// Record accumulates one firm's invoice amounts across the buckets.
type Record struct {
	Firm        string  `json:"firm"`
	Total       float64 `json:"total"`
	NotDue      float64 `json:"notDue"`
	Days0To7    float64 `json:"days0_7"`
	Days8To30   float64 `json:"days8_30"`
	Days30To200 float64 `json:"days30_200"`
}

// BucketSum is the bifurcation total across the four buckets.
func (r Record) BucketSum() float64 {
	return r.NotDue + r.Days0To7 + r.Days8To30 + r.Days30To200
}

// Discrepancy is the amount sitting outside every bucket (ageing > 200).
func (r Record) Discrepancy() float64 {
	return r.Total - r.BucketSum()
}

// HasDiscrepancy flags records whose bucket sum drifts more than one
// rupee from the total. The gap is surfaced, not corrected.
func (r Record) HasDiscrepancy() bool {
	diff := r.Discrepancy()
	if diff < 0 {
		diff = -diff
	}
	return diff > 1
}

// Result holds the two parallel per-firm groupings.
type Result struct {
	BuyerAgeing []Record `json:"buyerAgeing"`
	MfgAgeing   []Record `json:"mfgAgeing"`
}

// Classify folds invoices into per-buyer and per-manufacturer ageing
// records. Every invoice adds its amount to exactly one bucket (or none
// past 200 days) and always to the firm total, on both sides. Records
// appear in first-seen order; missing firm names group under "".
func Classify(invoices []invoice.Invoice) Result {
	var buyers, mfgs accumulator
	for _, inv := range invoices {
		buyers.add(inv.Buyer, inv.Amount, inv.Ageing)
		mfgs.add(inv.Mfg, inv.Amount, inv.Ageing)
	}
	return Result{BuyerAgeing: buyers.records(), MfgAgeing: mfgs.records()}
}

type accumulator struct {
	index map[string]int
	recs  []Record
}

func (a *accumulator) add(firm string, amount float64, ageingDays int) {
	if a.index == nil {
		a.index = make(map[string]int)
	}
	i, ok := a.index[firm]
	if !ok {
		i = len(a.recs)
		a.index[firm] = i
		a.recs = append(a.recs, Record{Firm: firm})
	}
	rec := &a.recs[i]
	rec.Total += amount
	bucket, ok := BucketFor(ageingDays)
	if !ok {
		return
	}
	switch bucket {
	case BucketNotDue:
		rec.NotDue += amount
	case Bucket0To7:
		rec.Days0To7 += amount
	case Bucket8To30:
		rec.Days8To30 += amount
	case Bucket30To200:
		rec.Days30To200 += amount
	}
}

func (a *accumulator) records() []Record {
	if a.recs == nil {
		return []Record{}
	}
	return a.recs
}
