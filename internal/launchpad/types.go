// Package launchpad provides a read-only client for the Launchpad bug
// tracker REST API and the adapter that normalizes its records.
//
// Only the small slice of the API the triage reports need is modeled:
// bug task searches, bug detail lookups, and subscription listings.
package launchpad

import (
	"net/http"
	"time"
)

// API configuration constants.
const (
	// DefaultAPIEndpoint is the Launchpad REST API base URL.
	DefaultAPIEndpoint = "https://api.launchpad.net/devel"

	// DefaultDistribution is the search target for bug task queries.
	DefaultDistribution = "ubuntu"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries bounds retry attempts for throttled or failing requests.
	MaxRetries = 3

	// MaxPages bounds collection pagination so a malformed
	// next_collection_link cannot loop forever.
	MaxPages = 100

	// bugFetchConcurrency bounds parallel bug detail lookups.
	bugFetchConcurrency = 8
)

// Client provides read access to the Launchpad REST API. Anonymous access
// works for public bugs; Token, when set, is sent as an OAuth header.
type Client struct {
	BaseURL      string
	Distribution string
	Token        string
	HTTPClient   *http.Client
}

// BugTask is one entry of a bug_task collection as returned by
// ws.op=searchTasks.
type BugTask struct {
	SelfLink     string `json:"self_link"`
	BugLink      string `json:"bug_link"`
	Title        string `json:"title"`
	Status       string `json:"status"`
	Importance   string `json:"importance"`
	AssigneeLink string `json:"assignee_link"`
}

// Bug is the bug resource behind a task's bug_link. date_last_updated lives
// here, not on the task.
type Bug struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Tags            []string   `json:"tags"`
	DateLastUpdated *time.Time `json:"date_last_updated"`
}

// Subscription is one entry of a bug's subscriptions collection.
type Subscription struct {
	PersonLink string `json:"person_link"`
}

// Collection pages carry entries plus a link to the next page.
type taskCollection struct {
	Entries            []BugTask `json:"entries"`
	NextCollectionLink string    `json:"next_collection_link"`
}

type subscriptionCollection struct {
	Entries            []Subscription `json:"entries"`
	NextCollectionLink string         `json:"next_collection_link"`
}
