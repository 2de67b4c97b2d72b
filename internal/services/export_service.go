package services

import (
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"issues-dashboard/internal/entities"
)

// ExportFilename is the download name of the workbook.
const ExportFilename = "Hardware_Issues_Dashboard.xlsx"

const exportSheet = "Issues"

// exportHeaders is the declared column order of the export.
var exportHeaders = []string{
	"Product Name",
	"Serial Number",
	"Lead ID",
	"Client Name",
	"Issue Description",
	"Issue Reported Date",
	"Support Team Received Date",
	"Call Taken By",
	"Device Received in Dallas",
	"Assigned To",
	"Assigned Date",
	"Target Completion Date",
	"RCA",
	"Status",
	"Priority",
	"Created At",
	"Updated At",
}

type ExportServiceInterface interface {
	Headers() []string
	ToExportRows(issues []entities.Issue) [][]string
	WriteWorkbook(w io.Writer, issues []entities.Issue) error
}

type exportService struct {
	logger *zap.Logger
}

func NewExportService(logger *zap.Logger) ExportServiceInterface {
	return &exportService{logger: logger}
}

func (s *exportService) Headers() []string {
	headers := make([]string, len(exportHeaders))
	copy(headers, exportHeaders)
	return headers
}

// ToExportRows projects issues onto flat rows aligned with Headers(). It
// operates on whatever subset the caller passes, so the export mirrors the
// currently filtered view rather than the full list.
func (s *exportService) ToExportRows(issues []entities.Issue) [][]string {
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		yesNo := "No"
		if issue.DeviceReceivedInDallas {
			yesNo = "Yes"
		}
		rows = append(rows, []string{
			issue.ProductName,
			issue.SerialNo,
			issue.LeadID,
			issue.ClientName,
			issue.IssueDescription,
			exportDate(issue.IssueReportedDate),
			exportDate(issue.SupportTeamReceivedDate),
			issue.CallTakenBy,
			yesNo,
			issue.AssignedTo.String(),
			exportDate(issue.AssignedDate),
			exportDate(issue.TargetCompletionDate),
			issue.RCA.String,
			issue.Status,
			issue.Priority,
			exportDateTime(issue.CreatedAt),
			exportDateTime(issue.UpdatedAt),
		})
	}
	return rows
}

func (s *exportService) WriteWorkbook(w io.Writer, issues []entities.Issue) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheet)
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		f.SetCellStyle(exportSheet, "A1", "Q1", style)
	}

	for i, row := range s.ToExportRows(issues) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return err
		}
	}

	f.SetColWidth(exportSheet, "A", "E", 24)
	f.SetColWidth(exportSheet, "F", "L", 18)
	f.SetColWidth(exportSheet, "M", "M", 40)

	return f.Write(w)
}

// exportDate renders an API timestamp in short date form; unparseable
// values pass through unchanged so a bad record never aborts the export.
func exportDate(value string) string {
	t, ok := entities.ParseAPIDate(value)
	if !ok {
		return value
	}
	return t.Format("02/01/2006")
}

func exportDateTime(value string) string {
	t, ok := entities.ParseAPIDate(value)
	if !ok {
		return value
	}
	return t.Format("02/01/2006 15:04:05")
}
