package types

import "sort"

// SortByLastUpdated orders records most-recently-modified first, with bug ID
// as a deterministic tiebreaker. This ordering is the display contract for
// every report list, so callers rely on it being stable run-to-run.
func SortByLastUpdated(records []BugRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].LastUpdated.Equal(records[j].LastUpdated) {
			return records[i].LastUpdated.After(records[j].LastUpdated)
		}
		return records[i].ID < records[j].ID
	})
}
