package entities

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/aarondl/null/v8"
)

// Closed status and priority sets. The upstream API owns the canonical
// values; the dashboard only ever renders and compares them.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusCritical   = "Critical"

	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

var (
	Statuses   = []string{StatusOpen, StatusInProgress, StatusCompleted, StatusCritical}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
)

// Issue is a hardware support ticket as served by the upstream API. Date
// fields stay as raw strings and are parsed lazily: a malformed date on one
// issue must not fail decoding of the whole list.
type Issue struct {
	ID                      string       `json:"_id"`
	ProductName             string       `json:"productName"`
	SerialNo                string       `json:"serialNo"`
	LeadID                  string       `json:"leadId"`
	ClientName              string       `json:"clientName"`
	IssueDescription        string       `json:"issueDescription"`
	IssueReportedDate       string       `json:"issueReportedDate"`
	SupportTeamReceivedDate string       `json:"supportTeamReceivedDate"`
	CallTakenBy             string       `json:"callTakenBy"`
	DeviceReceivedInDallas  bool         `json:"deviceReceivedInDallas"`
	AssignedTo              AssigneeName `json:"assignedTo"`
	AssignedDate            string       `json:"assignedDate"`
	TargetCompletionDate    string       `json:"targetCompletionDate"`
	RCA                     null.String  `json:"rca"`
	Status                  string       `json:"status"`
	Priority                string       `json:"priority"`
	Technician              null.String  `json:"technician"`
	CreatedAt               string       `json:"createdAt"`
	UpdatedAt               string       `json:"updatedAt"`
}

// ReportedAt parses issueReportedDate. ok is false when the field is
// absent or unparseable.
func (i Issue) ReportedAt() (time.Time, bool) {
	return ParseAPIDate(i.IssueReportedDate)
}

// SearchValues returns the textual rendering of every field, mirroring the
// "match against any field" search contract.
func (i Issue) SearchValues() []string {
	return []string{
		i.ID,
		i.ProductName,
		i.SerialNo,
		i.LeadID,
		i.ClientName,
		i.IssueDescription,
		i.IssueReportedDate,
		i.SupportTeamReceivedDate,
		i.CallTakenBy,
		strconv.FormatBool(i.DeviceReceivedInDallas),
		i.AssignedTo.String(),
		i.AssignedDate,
		i.TargetCompletionDate,
		i.RCA.String,
		i.Status,
		i.Priority,
		i.Technician.String,
		i.CreatedAt,
		i.UpdatedAt,
	}
}

// AssigneeName tolerates the two shapes the upstream API serves for
// assignedTo: a plain name string, or an embedded team-member object.
type AssigneeName string

func (a *AssigneeName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = AssigneeName(s)
		return nil
	}

	var ref struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &ref); err == nil {
		*a = AssigneeName(ref.Name)
		return nil
	}

	*a = ""
	return nil
}

func (a AssigneeName) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

func (a AssigneeName) String() string { return string(a) }

// apiDateLayouts are the timestamp shapes seen from the upstream API.
var apiDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

func ParseAPIDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range apiDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
