package utils

import (
	"net/url"
	"time"

	"issues-dashboard/pkg/types"
)

// filterDateLayouts accepts the date-picker form (dd-mm-yyyy) plus the
// machine shapes used by the export links.
var filterDateLayouts = []string{
	"02-01-2006",
	"2006-01-02",
	time.RFC3339,
}

// ParseFilterSpecFromQuery rebuilds the FilterSpec from request query
// parameters. Unknown or malformed values leave the clause unset; the date
// clause activates only when both ends parse.
func ParseFilterSpecFromQuery(query url.Values) types.FilterSpec {
	spec := types.FilterSpec{
		Search:     query.Get("search"),
		Priority:   query.Get("priority"),
		AssignedTo: query.Get("assigned_to"),
		Status:     query.Get("status"),
	}

	from, okFrom := parseFilterDate(query.Get("date_from"))
	to, okTo := parseFilterDate(query.Get("date_to"))
	if okFrom && okTo {
		// The range is inclusive, so a date-only upper bound covers the
		// whole day.
		if to.Equal(to.Truncate(24 * time.Hour)) {
			to = to.Add(time.Hour*24 - time.Nanosecond)
		}
		spec.DateFrom = &from
		spec.DateTo = &to
	}

	return spec
}

func parseFilterDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range filterDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
