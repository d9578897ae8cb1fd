// Package sauda models trade orders between buyers and manufacturers,
// tracked through pending and completed states.
package sauda

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// OrderStatus enumerates sauda lifecycle states.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusCompleted OrderStatus = "COMPLETED"
)

// Order is one trade order as delivered by the document store.
type Order struct {
	ID      string      `json:"id"`
	Date    string      `json:"date"`
	Quality string      `json:"quality"`
	Buyer   string      `json:"buyer"`
	Mfg     string      `json:"mfg"`
	Pending float64     `json:"pending"`
	Unit    string      `json:"unit"`
	Ordered float64     `json:"ordered,omitempty"`
	Sent    float64     `json:"sent,omitempty"`
	Status  OrderStatus `json:"status,omitempty"`
}

// PendingQty derives the outstanding quantity from ordered/sent when the
// upstream record carries them, falling back to the stored pending figure.
// The absolute value masks over-fulfillment; kept for parity with the
// upstream books.
func (o Order) PendingQty() float64 {
	if o.Ordered > 0 || o.Sent > 0 {
		return math.Abs(o.Ordered - o.Sent)
	}
	return o.Pending
}

// FulfillmentPercent is round(sent/ordered*100), or 0 when nothing was ordered.
func (o Order) FulfillmentPercent() int {
	if o.Ordered <= 0 {
		return 0
	}
	return int(math.Round(o.Sent / o.Ordered * 100))
}

// Document is a raw sauda record from the document store.
type Document map[string]any

// FromDocument coerces a raw document into an Order. Missing numerics
// default to 0, missing strings to "".
func FromDocument(id string, doc Document, status OrderStatus) Order {
	if id == "" {
		id = docString(doc, "id")
	}
	return Order{
		ID:      id,
		Date:    docString(doc, "date"),
		Quality: docString(doc, "quality"),
		Buyer:   docString(doc, "buyer"),
		Mfg:     docString(doc, "mfg"),
		Pending: docNumber(doc, "pending"),
		Unit:    docString(doc, "unit"),
		Ordered: docNumber(doc, "ordered"),
		Sent:    docNumber(doc, "sent"),
		Status:  status,
	}
}

func docString(doc Document, key string) string {
	switch v := doc[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func docNumber(doc Document, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
