package services

import (
	"strings"

	"go.uber.org/zap"

	"issues-dashboard/internal/entities"
	"issues-dashboard/pkg/types"
)

type IssueViewServiceInterface interface {
	ApplyFilters(issues []entities.Issue, spec types.FilterSpec) []entities.Issue
	ComputeStats(issues []entities.Issue) types.IssueStats
}

type issueViewService struct {
	logger *zap.Logger
}

func NewIssueViewService(logger *zap.Logger) IssueViewServiceInterface {
	return &issueViewService{logger: logger}
}

// ApplyFilters narrows the issue list by AND-composing the active clauses.
// The result preserves input order; no clause re-sorts. An empty spec is
// the identity and returns the input slice untouched.
func (s *issueViewService) ApplyFilters(issues []entities.Issue, spec types.FilterSpec) []entities.Issue {
	if spec.IsEmpty() {
		return issues
	}

	search := strings.ToLower(spec.Search)

	filtered := make([]entities.Issue, 0, len(issues))
	for _, issue := range issues {
		if search != "" && !matchesSearch(issue, search) {
			continue
		}
		if spec.DateRangeActive() {
			reported, ok := issue.ReportedAt()
			// An unparseable reported date never matches a date range.
			if !ok || reported.Before(*spec.DateFrom) || reported.After(*spec.DateTo) {
				continue
			}
		}
		if spec.Priority != "" && issue.Priority != spec.Priority {
			continue
		}
		if spec.AssignedTo != "" && issue.AssignedTo.String() != spec.AssignedTo {
			continue
		}
		if spec.Status != "" && issue.Status != spec.Status {
			continue
		}
		filtered = append(filtered, issue)
	}
	return filtered
}

// matchesSearch checks the lowercased term against every field's textual
// form, not a fixed subset.
func matchesSearch(issue entities.Issue, term string) bool {
	for _, value := range issue.SearchValues() {
		if strings.Contains(strings.ToLower(value), term) {
			return true
		}
	}
	return false
}

// ComputeStats tallies the dashboard counters in one pass. The status
// buckets partition the list; the critical bucket is independent and counts
// an issue whose status OR priority is Critical exactly once.
func (s *issueViewService) ComputeStats(issues []entities.Issue) types.IssueStats {
	stats := types.IssueStats{Total: len(issues)}
	for _, issue := range issues {
		switch issue.Status {
		case entities.StatusOpen:
			stats.Open++
		case entities.StatusInProgress:
			stats.InProgress++
		case entities.StatusCompleted:
			stats.Completed++
		}
		if issue.Status == entities.StatusCritical || issue.Priority == entities.PriorityCritical {
			stats.Critical++
		}
	}
	return stats
}
