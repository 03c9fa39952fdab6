package launchpad

import (
	"fmt"

	"github.com/canonical/ustriage/internal/types"
)

// AdapterError reports a raw API record that cannot be normalized because a
// mandatory field is missing or malformed. Callers skip the record and
// continue; one bad bug should not abort a whole triage run.
type AdapterError struct {
	BugLink string
	Field   string
	Reason  string
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("cannot adapt bug task %s: field %s %s", e.BugLink, e.Field, e.Reason)
}

// Adapt normalizes a raw bug task and its bug resource into a BugRecord.
// id, status, and date_last_updated are mandatory; assignee, tags, and
// subscribers default to empty when absent.
func Adapt(task BugTask, bug Bug, subscribers []string) (types.BugRecord, error) {
	if bug.ID <= 0 {
		return types.BugRecord{}, &AdapterError{BugLink: task.BugLink, Field: "id", Reason: "missing or non-positive"}
	}
	if task.Status == "" {
		return types.BugRecord{}, &AdapterError{BugLink: task.BugLink, Field: "status", Reason: "missing"}
	}
	if bug.DateLastUpdated == nil || bug.DateLastUpdated.IsZero() {
		return types.BugRecord{}, &AdapterError{BugLink: task.BugLink, Field: "date_last_updated", Reason: "missing"}
	}

	return types.BugRecord{
		ID:          bug.ID,
		Title:       bug.Title,
		Status:      types.ParseStatus(task.Status),
		Importance:  types.ParseImportance(task.Importance),
		Assignee:    personLinkName(task.AssigneeLink),
		Tags:        bug.Tags,
		LastUpdated: bug.DateLastUpdated.UTC(),
		Subscribers: subscribers,
	}, nil
}
