package types

// IssueStats are the dashboard summary counters, recomputed in full
// whenever the issue list changes. The critical bucket is a cross-cutting
// severity flag (status or priority) and may overlap the status buckets.
type IssueStats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Critical   int `json:"critical"`
}
