// Package report renders bug record lists as aligned text lines. It is
// side-effect free: callers decide where the lines go (stdout, a pager, a
// browser-opening loop).
package report

import (
	"fmt"

	"github.com/canonical/ustriage/internal/expiry"
	"github.com/canonical/ustriage/internal/types"
	"github.com/canonical/ustriage/internal/ui"
)

// BugNumberLength pads bug ids to the width of current Launchpad numbers so
// columns stay aligned.
const BugNumberLength = 7

const titleWidth = 60

// LinkStyle selects how bug references are rendered.
type LinkStyle string

// Link styles.
const (
	LinkShort LinkStyle = "short" // "LP: #1234567", autolinked by gnome-terminal
	LinkFull  LinkStyle = "full"  // "https://pad.lv/1234567"
)

// Options controls report rendering.
type Options struct {
	LinkStyle LinkStyle
	Extended  bool

	// MaxEntries caps very long lists: when positive and the list holds
	// more than twice this many records, only the MaxEntries most recent
	// and MaxEntries oldest entries are shown, with an omission marker
	// between the groups.
	MaxEntries int
}

// Header returns a column header matching the Format line layout.
func Header(opts Options) string {
	text := fmt.Sprintf("%-*s |", linkWidth(opts.LinkStyle), "Bug")
	if opts.Extended {
		text += fmt.Sprintf(" %-8s | %-10s | %-13s |", "Last Upd", "Prio", "Assignee")
	}
	text += fmt.Sprintf(" %-*s |", titleWidth, "Title")
	return text
}

// Format renders records into display lines. records must already carry the
// most-recent-first ordering produced by the filter package; Format never
// re-sorts. expirations may be nil when expiry classification is disabled.
func Format(records []types.BugRecord, opts Options, expirations map[int]expiry.Info) []string {
	if opts.MaxEntries > 0 && len(records) > 2*opts.MaxEntries {
		omitted := len(records) - 2*opts.MaxEntries
		lines := make([]string, 0, 2*opts.MaxEntries+1)
		for _, rec := range records[:opts.MaxEntries] {
			lines = append(lines, formatLine(rec, opts, expirations))
		}
		lines = append(lines, ui.RenderMuted(
			fmt.Sprintf("(... %d entries omitted ...)", omitted)))
		for _, rec := range records[len(records)-opts.MaxEntries:] {
			lines = append(lines, formatLine(rec, opts, expirations))
		}
		return lines
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, formatLine(rec, opts, expirations))
	}
	return lines
}

// URLs returns the full bug URLs for a record list, in display order, for
// callers that open results in a browser.
func URLs(records []types.BugRecord) []string {
	urls := make([]string, 0, len(records))
	for _, rec := range records {
		urls = append(urls, rec.URL())
	}
	return urls
}

func formatLine(rec types.BugRecord, opts Options, expirations map[int]expiry.Info) string {
	link := rec.ShortLink()
	if opts.LinkStyle == LinkFull {
		link = rec.URL()
	}

	text := fmt.Sprintf("%-*s |", linkWidth(opts.LinkStyle), link)
	if opts.Extended {
		assignee := "(unassigned)"
		if rec.Assignee != "" {
			assignee = truncateString(rec.Assignee, 13)
		}
		text += fmt.Sprintf(" %8s | %-10s | %-13s |",
			rec.LastUpdated.Format("02.01.06"),
			rec.Importance,
			assignee)
	}
	text += fmt.Sprintf(" %-*s |", titleWidth, truncateString(rec.Title, titleWidth))

	if info, ok := expirations[rec.ID]; ok && info.Expired {
		text += " " + ui.RenderExpired(fmt.Sprintf("(inactive %d days, threshold %d)",
			info.InactiveDays, info.ThresholdUsed))
	}
	return text
}

func linkWidth(style LinkStyle) int {
	if style == LinkFull {
		return len(types.LongURLRoot) + BugNumberLength
	}
	return len(types.ShortLinkRoot) + BugNumberLength
}

// truncateString shortens text to length runes, replacing the final rune
// with an ellipsis when anything was cut.
func truncateString(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length-1]) + "…"
}

// Strings below are exported for the CLI's section headers so category
// naming stays consistent between the report and the tests.
const (
	SectionTriage     = "Bugs last updated in range"
	SectionTagged     = "Tagged bugs"
	SectionSubscribed = "Subscribed bugs"
)

// SectionHeader renders a styled category header with the entry count.
func SectionHeader(name string, count int) string {
	return ui.RenderHeader(fmt.Sprintf("%s (%d)", name, count))
}
