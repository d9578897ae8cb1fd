package invoice

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Document is a raw invoice record as synced from the document store.
// Fields are optionally present and loosely typed; normalization happens
// here, once, instead of defensively at every use site.
type Document map[string]any

// FromDocument coerces a raw document into an Invoice. Missing or
// non-numeric amount/ageing default to 0; missing strings become "".
func FromDocument(id string, doc Document) Invoice {
	if id == "" {
		id = docString(doc, "id")
	}
	return Invoice{
		ID:          id,
		Number:      docString(doc, "invoice"),
		Date:        docString(doc, "date"),
		Buyer:       docString(doc, "buyer"),
		Mfg:         docString(doc, "mfg"),
		Amount:      docNumber(doc, "amount"),
		Due:         docString(doc, "due"),
		Status:      Status(docString(doc, "status")),
		Ageing:      int(docNumber(doc, "ageing")),
		IsReturn:    docBool(doc, "isReturn"),
		PaymentType: docString(doc, "payment_type"),
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

func docBool(doc Document, key string) bool {
	switch v := doc[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}
