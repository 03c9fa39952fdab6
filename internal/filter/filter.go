// Package filter selects bug records matching a triage query. Predicates
// are pure functions over normalized BugRecords; the Launchpad client never
// leaks into this package.
package filter

import (
	"errors"
	"fmt"
	"time"

	"github.com/canonical/ustriage/internal/types"
)

// Defaults for the query subject when no flag or config overrides them.
const (
	DefaultSubjectName = "ubuntu-server"
	DefaultTag         = "server-next"
)

// ErrInvalidSpec marks a self-contradictory filter specification. Surfaced
// before any network round-trip is attempted.
var ErrInvalidSpec = errors.New("invalid filter spec")

// SubscriptionKind selects which subscriber set a subscription query
// matches against.
type SubscriptionKind string

// Subscription kinds.
const (
	SubscriptionStructural SubscriptionKind = "structural"
	SubscriptionDirect     SubscriptionKind = "direct"
)

// IsValid checks if the subscription kind is a known value.
func (k SubscriptionKind) IsValid() bool {
	return k == SubscriptionStructural || k == SubscriptionDirect
}

// DateRange is an inclusive calendar-date interval. Times of day are
// ignored; a record updated at any time on End still matches.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Spec describes one triage query: which report categories to produce and
// the criteria each category filters by.
type Spec struct {
	// DateRange bounds the triage-by-date list. nil means unbounded.
	DateRange *DateRange

	// SubjectName is the person or team the subscription list filters by.
	SubjectName string

	// SubscriptionKind selects structural vs direct subscription matching.
	SubscriptionKind SubscriptionKind

	// Tag is the tag the tag-based list filters by.
	Tag string

	// Report categories to produce. At least one must be enabled.
	ShowTriage     bool
	ShowTagged     bool
	ShowSubscribed bool
}

// DefaultSpec returns a spec with the stock subject, tag, and subscription
// kind, showing the triage list only. Defaults are explicit field values,
// not hidden package state.
func DefaultSpec() Spec {
	return Spec{
		SubjectName:      DefaultSubjectName,
		SubscriptionKind: SubscriptionStructural,
		Tag:              DefaultTag,
		ShowTriage:       true,
	}
}

// Validate rejects self-contradictory specs. All failures wrap
// ErrInvalidSpec so callers can branch on the class of error.
func (s *Spec) Validate() error {
	if !s.ShowTriage && !s.ShowTagged && !s.ShowSubscribed {
		return fmt.Errorf("%w: no report category selected", ErrInvalidSpec)
	}
	if s.DateRange != nil {
		start, end := dateOnly(s.DateRange.Start), dateOnly(s.DateRange.End)
		if end.Before(start) {
			return fmt.Errorf("%w: end date %s before start date %s", ErrInvalidSpec,
				end.Format("2006-01-02"), start.Format("2006-01-02"))
		}
	}
	if s.SubscriptionKind != "" && !s.SubscriptionKind.IsValid() {
		return fmt.Errorf("%w: unknown subscription kind %q", ErrInvalidSpec, s.SubscriptionKind)
	}
	return nil
}

// NewDateRange builds an inclusive range from one or two calendar dates.
// With only a start date, the range covers that single day. Inputs are
// truncated to midnight UTC: a range is a pair of calendar dates, and
// times of day left over from relative or natural-language parsing must
// not influence validation or matching.
func NewDateRange(start, end time.Time) *DateRange {
	if end.IsZero() {
		end = start
	}
	return &DateRange{Start: dateOnly(start), End: dateOnly(end)}
}

// InDateRange reports whether the record's last-updated calendar date falls
// within the range, inclusive on both ends. A nil range matches everything.
func InDateRange(rec types.BugRecord, r *DateRange) bool {
	if r == nil {
		return true
	}
	d := dateOnly(rec.LastUpdated)
	return !d.Before(dateOnly(r.Start)) && !d.After(dateOnly(r.End))
}

// HasTag reports whether the record carries the spec's tag.
func HasTag(rec types.BugRecord, tag string) bool {
	return rec.HasTag(tag)
}

// SubscribedBy reports whether subject matches the record under the given
// subscription kind.
func SubscribedBy(rec types.BugRecord, subject string, kind SubscriptionKind) bool {
	switch kind {
	case SubscriptionDirect:
		return rec.IsSubscriber(subject)
	default:
		return rec.IsStructuralSubscriber(subject)
	}
}

// Predicate is a single match criterion over a bug record.
type Predicate func(types.BugRecord) bool

// Apply returns the records satisfying every predicate, ordered most
// recently updated first. The input slice is not modified; an empty result
// is valid and means "nothing matched".
func Apply(records []types.BugRecord, preds ...Predicate) []types.BugRecord {
	out := make([]types.BugRecord, 0, len(records))
	for _, rec := range records {
		matched := true
		for _, pred := range preds {
			if !pred(rec) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, rec)
		}
	}
	types.SortByLastUpdated(out)
	return out
}

// Triage returns the date-filtered triage list for the spec.
func Triage(records []types.BugRecord, spec Spec) []types.BugRecord {
	return Apply(records, func(rec types.BugRecord) bool {
		return InDateRange(rec, spec.DateRange)
	})
}

// Tagged returns the tag-filtered list for the spec.
func Tagged(records []types.BugRecord, spec Spec) []types.BugRecord {
	return Apply(records, func(rec types.BugRecord) bool {
		return HasTag(rec, spec.Tag)
	})
}

// Subscribed returns the subscription-filtered list for the spec.
func Subscribed(records []types.BugRecord, spec Spec) []types.BugRecord {
	return Apply(records, func(rec types.BugRecord) bool {
		return SubscribedBy(rec, spec.SubjectName, spec.SubscriptionKind)
	})
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
