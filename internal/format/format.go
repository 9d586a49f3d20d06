// Package format holds presentation helpers: status-to-display-class
// lookup, date and currency rendering, and the wire<->model reshaping for
// candidate and process records.
package format

import (
	"time"

	"github.com/dustin/go-humanize"
)

// statusClasses maps backend status values to display classes. Candidate
// and process statuses share the namespace; collisions (rejected,
// cancelled) agree on the class anyway.
var statusClasses = map[string]string{
	// candidates
	"new":       "status-info",
	"screening": "status-pending",
	"qualified": "status-success",
	"interview": "status-active",
	"offer":     "status-highlight",
	"hired":     "status-success",
	"rejected":  "status-danger",
	"withdrawn": "status-muted",

	// processes
	"draft":            "status-muted",
	"pending":          "status-pending",
	"approved":         "status-success",
	"in_progress":      "status-active",
	"candidates_found": "status-info",
	"in_evaluation":    "status-active",
	"in_interview":     "status-active",
	"finalists":        "status-highlight",
	"completed":        "status-success",
	"cancelled":        "status-danger",
}

// StatusClass returns the display class for a backend status value, or
// "status-default" for anything unrecognized.
func StatusClass(status string) string {
	if class, ok := statusClasses[status]; ok {
		return class
	}
	return "status-default"
}

const dateLayout = "02/01/2006"

// wire layouts the backend actually emits, most specific first
var wireLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// Date renders a wire timestamp as dd/mm/yyyy. Unparseable input is
// returned unchanged so a bad value stays visible instead of vanishing.
func Date(value string) string {
	for _, layout := range wireLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format(dateLayout)
		}
	}
	return value
}

// Currency renders an amount with thousands separators and the currency
// code, e.g. Currency(1500000, "CLP") -> "$1,500,000 CLP".
func Currency(amount float64, code string) string {
	formatted := "$" + humanize.CommafWithDigits(amount, 0)
	if code == "" {
		return formatted
	}
	return formatted + " " + code
}
