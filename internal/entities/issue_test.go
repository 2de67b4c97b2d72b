package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssigneeNameDecodesBothShapes(t *testing.T) {
	var fromString Issue
	require.NoError(t, json.Unmarshal([]byte(`{"assignedTo": "Jane Smith"}`), &fromString))
	assert.Equal(t, "Jane Smith", fromString.AssignedTo.String())

	var fromObject Issue
	require.NoError(t, json.Unmarshal([]byte(`{"assignedTo": {"_id": "tm-1", "name": "John Doe"}}`), &fromObject))
	assert.Equal(t, "John Doe", fromObject.AssignedTo.String())

	var fromNull Issue
	require.NoError(t, json.Unmarshal([]byte(`{"assignedTo": null}`), &fromNull))
	assert.Equal(t, "", fromNull.AssignedTo.String())
}

func TestMalformedDateDoesNotFailDecoding(t *testing.T) {
	payload := `[{"_id": "a", "issueReportedDate": "garbage"}, {"_id": "b", "issueReportedDate": "2025-03-01T09:30:00Z"}]`

	var issues []Issue
	require.NoError(t, json.Unmarshal([]byte(payload), &issues))
	require.Len(t, issues, 2)

	_, ok := issues[0].ReportedAt()
	assert.False(t, ok)

	reported, ok := issues[1].ReportedAt()
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC), reported)
}

func TestParseAPIDate(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"2025-03-01T09:30:00.123Z", true},
		{"2025-03-01T09:30:00Z", true},
		{"2025-03-01", true},
		{"", false},
		{"01/03/2025", false},
	}
	for _, tc := range cases {
		_, ok := ParseAPIDate(tc.value)
		assert.Equal(t, tc.ok, ok, tc.value)
	}
}

func TestSearchValuesCoverEveryField(t *testing.T) {
	issue := Issue{ID: "iss-1", DeviceReceivedInDallas: true}
	values := issue.SearchValues()

	assert.Len(t, values, 19)
	assert.Contains(t, values, "iss-1")
	assert.Contains(t, values, "true")
}
