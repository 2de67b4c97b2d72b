package services

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"issues-dashboard/internal/entities"
	"issues-dashboard/pkg/types"
)

func sampleIssues() []entities.Issue {
	return []entities.Issue{
		{
			ID:                     "iss-1",
			ProductName:            "ThinkStation P360",
			SerialNo:               "SN-1001",
			LeadID:                 "LD-77",
			ClientName:             "Acme Corp",
			IssueDescription:       "Machine does not power on",
			IssueReportedDate:      "2025-03-01T09:30:00Z",
			CallTakenBy:            "Helpdesk",
			AssignedTo:             "Jane Smith",
			Status:                 entities.StatusOpen,
			Priority:               entities.PriorityHigh,
			Technician:             null.StringFrom("Bob"),
			DeviceReceivedInDallas: true,
		},
		{
			ID:                "iss-2",
			ProductName:       "Latitude 5420",
			SerialNo:          "SN-1002",
			ClientName:        "Globex",
			IssueDescription:  "Screen flickering under load",
			IssueReportedDate: "2025-03-10T14:00:00Z",
			AssignedTo:        "John Doe",
			Status:            entities.StatusCompleted,
			Priority:          entities.PriorityCritical,
		},
		{
			ID:                "iss-3",
			ProductName:       "ProLiant DL380",
			SerialNo:          "SN-1003",
			ClientName:        "Initech",
			IssueDescription:  "RAID controller failure",
			IssueReportedDate: "2025-04-02T08:00:00Z",
			AssignedTo:        "Jane Smith",
			Status:            entities.StatusCritical,
			Priority:          entities.PriorityMedium,
		},
	}
}

func TestApplyFiltersEmptySpecReturnsInputUnchanged(t *testing.T) {
	svc := NewIssueViewService(zap.NewNop())
	issues := sampleIssues()

	got := svc.ApplyFilters(issues, types.FilterSpec{})

	assert.Len(t, got, len(issues))
	// The empty spec is the identity: same backing slice, not a copy.
	assert.Same(t, &issues[0], &got[0])
}

func TestApplyFiltersSearchMatchesAnyField(t *testing.T) {
	svc := NewIssueViewService(zap.NewNop())
	issues := sampleIssues()

	cases := []struct {
		name   string
		search string
		ids    []string
	}{
		{"product name", "latitude", []string{"iss-2"}},
		{"serial number", "sn-1003", []string{"iss-3"}},
		{"client name", "acme", []string{"iss-1"}},
		{"technician", "bob", []string{"iss-1"}},
		{"boolean field", "true", []string{"iss-1"}},
		{"case insensitive", "RAID", []string{"iss-3"}},
		{"no match", "zzz-nothing", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := svc.ApplyFilters(issues, types.FilterSpec{Search: tc.search})
			ids := make([]string, 0, len(got))
			for _, issue := range got {
				ids = append(ids, issue.ID)
			}
			if tc.ids == nil {
				assert.Empty(t, ids)
				return
			}
			assert.Equal(t, tc.ids, ids)
		})
	}
}

func TestApplyFiltersByAssignee(t *testing.T) {
	svc := NewIssueViewService(zap.NewNop())

	got := svc.ApplyFilters(sampleIssues(), types.FilterSpec{AssignedTo: "Jane Smith"})

	require.Len(t, got, 2)
	assert.Equal(t, "iss-1", got[0].ID)
	assert.Equal(t, "iss-3", got[1].ID)
}

func TestApplyFiltersDateRangeInclusive(t *testing.T) {
	svc := NewIssueViewService(zap.NewNop())
	issues := sampleIssues()

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	got := svc.ApplyFilters(issues, types.FilterSpec{DateFrom: &from, DateTo: &to})

	require.Len(t, got, 2)
	assert.Equal(t, "iss-1", got[0].ID)
	assert.Equal(t, "iss-2", got[1].ID)
}

func TestApplyFiltersDateRangeExcludesUnparseableDates(t *testing.T) {
	svc := NewIssueViewService(zap.NewNop())
	issues := sampleIssues()
	issues[0].IssueReportedDate = "not a date"

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	got := svc.ApplyFilters(issues, types.FilterSpec{DateFrom: &from, DateTo: &to})

	require.Len(t, got, 2)
	for _, issue := range got {
		assert.NotEqual(t, "iss-1", issue.ID)
	}
}

func TestApplyFiltersClausesCompose(t *testing.T) {
	svc := NewIssueViewService(zap.NewNop())

	got := svc.ApplyFilters(sampleIssues(), types.FilterSpec{
		Search:     "sn-100",
		AssignedTo: "Jane Smith",
		Status:     entities.StatusCritical,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "iss-3", got[0].ID)
}

func TestComputeStats(t *testing.T) {
	svc := NewIssueViewService(zap.NewNop())

	stats := svc.ComputeStats(sampleIssues())

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Open)
	assert.Equal(t, 0, stats.InProgress)
	assert.Equal(t, 1, stats.Completed)
	// iss-2 has Critical priority, iss-3 has Critical status.
	assert.Equal(t, 2, stats.Critical)
}

func TestComputeStatsCriticalCountsStatusOrPriorityOnce(t *testing.T) {
	svc := NewIssueViewService(zap.NewNop())

	// Status AND priority both Critical still counts once.
	stats := svc.ComputeStats([]entities.Issue{
		{ID: "x", Status: entities.StatusCritical, Priority: entities.PriorityCritical},
	})

	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Critical)
}

func TestComputeStatsEmptyList(t *testing.T) {
	svc := NewIssueViewService(zap.NewNop())

	assert.Equal(t, types.IssueStats{}, svc.ComputeStats(nil))
}
