// Package types defines core data structures for the ustriage bug triage tool.
package types

import (
	"fmt"
	"time"
)

// Launchpad URL roots. The short form is autolinked by gnome-terminal,
// the long form is the canonical redirector.
const (
	LongURLRoot   = "https://pad.lv/"
	ShortLinkRoot = "LP: #"
)

// BugRecord is the normalized view of one Launchpad bug task.
// Raw API objects are converted into this form by the launchpad package;
// everything downstream (filtering, expiry classification, report
// formatting) operates on BugRecords only.
type BugRecord struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Status      Status     `json:"status"`
	Importance  Importance `json:"importance"`
	Assignee    string     `json:"assignee,omitempty"` // empty = unassigned
	Tags        []string   `json:"tags,omitempty"`
	LastUpdated time.Time  `json:"last_updated"` // UTC, monotonic in the source system

	// Subscription state, populated from the query that returned the task.
	Subscribers               []string `json:"subscribers,omitempty"`
	StructuralSubscriberTeams []string `json:"structural_subscriber_teams,omitempty"`
}

// URL returns the full user-facing URL of the bug.
func (r *BugRecord) URL() string {
	return fmt.Sprintf("%s%d", LongURLRoot, r.ID)
}

// ShortLink returns the short-form bug reference (e.g. "LP: #1234567").
func (r *BugRecord) ShortLink() string {
	return fmt.Sprintf("%s%d", ShortLinkRoot, r.ID)
}

// HasTag reports whether the record carries the given tag (exact,
// case-sensitive match).
func (r *BugRecord) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsSubscriber reports whether name is a direct subscriber of the bug.
func (r *BugRecord) IsSubscriber(name string) bool {
	for _, s := range r.Subscribers {
		if s == name {
			return true
		}
	}
	return false
}

// IsStructuralSubscriber reports whether team has a structural subscription
// covering the bug.
func (r *BugRecord) IsStructuralSubscriber(team string) bool {
	for _, t := range r.StructuralSubscriberTeams {
		if t == team {
			return true
		}
	}
	return false
}

// Status represents the Launchpad bug task status.
type Status string

// Bug task status constants as reported by the Launchpad API.
const (
	StatusNew                       Status = "New"
	StatusIncomplete                Status = "Incomplete"
	StatusIncompleteWithResponse    Status = "Incomplete (with response)"
	StatusIncompleteWithoutResponse Status = "Incomplete (without response)"
	StatusOpinion                   Status = "Opinion"
	StatusInvalid                   Status = "Invalid"
	StatusWontFix                   Status = "Won't Fix"
	StatusExpired                   Status = "Expired"
	StatusConfirmed                 Status = "Confirmed"
	StatusTriaged                   Status = "Triaged"
	StatusInProgress                Status = "In Progress"
	StatusFixCommitted              Status = "Fix Committed"
	StatusFixReleased               Status = "Fix Released"
	StatusUnknown                   Status = "Unknown"
)

// IsValid checks if the status is one of the known Launchpad values.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusIncomplete, StatusIncompleteWithResponse,
		StatusIncompleteWithoutResponse, StatusOpinion, StatusInvalid,
		StatusWontFix, StatusExpired, StatusConfirmed, StatusTriaged,
		StatusInProgress, StatusFixCommitted, StatusFixReleased:
		return true
	}
	return false
}

// ParseStatus maps a raw API status string onto a Status, falling back to
// StatusUnknown for values added server-side after this tool was built.
func ParseStatus(raw string) Status {
	s := Status(raw)
	if s.IsValid() {
		return s
	}
	return StatusUnknown
}

// Importance represents the Launchpad bug task importance.
type Importance string

// Bug task importance constants as reported by the Launchpad API.
const (
	ImportanceUndecided Importance = "Undecided"
	ImportanceCritical  Importance = "Critical"
	ImportanceHigh      Importance = "High"
	ImportanceMedium    Importance = "Medium"
	ImportanceLow       Importance = "Low"
	ImportanceWishlist  Importance = "Wishlist"
	ImportanceUnknown   Importance = "Unknown"
)

// IsValid checks if the importance is one of the known Launchpad values.
func (i Importance) IsValid() bool {
	switch i {
	case ImportanceUndecided, ImportanceCritical, ImportanceHigh,
		ImportanceMedium, ImportanceLow, ImportanceWishlist:
		return true
	}
	return false
}

// ParseImportance maps a raw API importance string onto an Importance,
// falling back to ImportanceUnknown.
func ParseImportance(raw string) Importance {
	i := Importance(raw)
	if i.IsValid() {
		return i
	}
	return ImportanceUnknown
}
