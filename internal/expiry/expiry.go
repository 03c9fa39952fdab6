// Package expiry classifies dormant bugs against configurable inactivity
// thresholds. Bugs carrying the tracked tag (by default "server-next",
// meaning the team has committed to work on them soon) are held to a
// tighter threshold than the general backlog.
package expiry

import (
	"time"

	"github.com/canonical/ustriage/internal/types"
)

// Default inactivity thresholds in days.
const (
	DefaultGeneralThresholdDays = 180
	DefaultTaggedThresholdDays  = 60
	DefaultTrackedTag           = "server-next"
)

// Policy holds the thresholds for expiry classification. Construct once per
// invocation and treat as immutable; defaults live here rather than in
// package-level state so concurrent or repeated runs cannot leak settings.
type Policy struct {
	GeneralThresholdDays int
	TaggedThresholdDays  int
	TrackedTag           string
}

// DefaultPolicy returns the stock policy: 180 days general, 60 days for
// bugs tagged server-next.
func DefaultPolicy() Policy {
	return Policy{
		GeneralThresholdDays: DefaultGeneralThresholdDays,
		TaggedThresholdDays:  DefaultTaggedThresholdDays,
		TrackedTag:           DefaultTrackedTag,
	}
}

// Info is the result of classifying one bug record.
type Info struct {
	Expired       bool
	InactiveDays  int
	ThresholdUsed int
}

// Classify determines whether a bug has been dormant past its threshold.
// now is an explicit input so the function stays deterministic under test.
// InactiveDays is the floor of the elapsed duration in whole days; the
// threshold boundary is inclusive (exactly threshold days dormant counts
// as expired).
func Classify(rec types.BugRecord, now time.Time, policy Policy) Info {
	threshold := policy.GeneralThresholdDays
	if policy.TrackedTag != "" && rec.HasTag(policy.TrackedTag) {
		threshold = policy.TaggedThresholdDays
	}

	days := int(now.Sub(rec.LastUpdated).Hours() / 24)
	if days < 0 {
		days = 0
	}

	return Info{
		Expired:       days >= threshold,
		InactiveDays:  days,
		ThresholdUsed: threshold,
	}
}
