package dto

// IssueFormDTO is what the issue form posts. It is forwarded to the
// upstream API as-is for both create and patch; empty date fields are
// defaulted to "now" before sending, matching the add-form defaults.
type IssueFormDTO struct {
	ProductName             string `json:"productName" form:"productName" validate:"required"`
	SerialNo                string `json:"serialNo" form:"serialNo" validate:"required"`
	LeadID                  string `json:"leadId" form:"leadId" validate:"omitempty"`
	ClientName              string `json:"clientName" form:"clientName" validate:"required"`
	IssueDescription        string `json:"issueDescription" form:"issueDescription" validate:"required"`
	IssueReportedDate       string `json:"issueReportedDate" form:"issueReportedDate" validate:"omitempty"`
	SupportTeamReceivedDate string `json:"supportTeamReceivedDate" form:"supportTeamReceivedDate" validate:"omitempty"`
	CallTakenBy             string `json:"callTakenBy" form:"callTakenBy" validate:"omitempty"`
	DeviceReceivedInDallas  bool   `json:"deviceReceivedInDallas" form:"deviceReceivedInDallas"`
	AssignedTo              string `json:"assignedTo" form:"assignedTo" validate:"omitempty"`
	AssignedDate            string `json:"assignedDate" form:"assignedDate" validate:"omitempty"`
	TargetCompletionDate    string `json:"targetCompletionDate" form:"targetCompletionDate" validate:"omitempty"`
	RCA                     string `json:"rca" form:"rca" validate:"omitempty"`
	Status                  string `json:"status" form:"status" validate:"required,oneof='Open' 'In Progress' 'Completed' 'Critical'"`
	Priority                string `json:"priority" form:"priority" validate:"required,oneof='Low' 'Medium' 'High' 'Critical'"`
	Technician              string `json:"technician" form:"technician" validate:"omitempty"`
}
