package types

import "time"

// FilterSpec represents the transient view filters for the issues table.
// An unset field imposes no constraint.
type FilterSpec struct {
	Search     string     `json:"search,omitempty" query:"search"`
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`
	Priority   string     `json:"priority,omitempty" query:"priority"`
	AssignedTo string     `json:"assigned_to,omitempty" query:"assigned_to"`
	Status     string     `json:"status,omitempty" query:"status"`
}

// DateRangeActive reports whether the date clause applies. Both ends are
// required together; a half-open range is treated as unset.
func (f FilterSpec) DateRangeActive() bool {
	return f.DateFrom != nil && f.DateTo != nil
}

// IsEmpty reports whether every clause is unset (identity filter).
func (f FilterSpec) IsEmpty() bool {
	return f.Search == "" && !f.DateRangeActive() &&
		f.Priority == "" && f.AssignedTo == "" && f.Status == ""
}
