package launchpad

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/canonical/ustriage/internal/debug"
	"github.com/canonical/ustriage/internal/types"
)

// NewClient creates a Launchpad client with default endpoint and timeout.
func NewClient(token string) *Client {
	return &Client{
		BaseURL:      DefaultAPIEndpoint,
		Distribution: DefaultDistribution,
		Token:        token,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithBaseURL returns a new client pointed at a custom API root (used by
// tests against httptest servers).
func (c *Client) WithBaseURL(baseURL string) *Client {
	return &Client{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		Distribution: c.Distribution,
		Token:        c.Token,
		HTTPClient:   c.HTTPClient,
	}
}

// personLinkName extracts the short account name from a Launchpad person
// link such as "https://api.launchpad.net/devel/~ahasenack". Fetching the
// person resource just for its name would cost a round-trip per bug; the
// link suffix is authoritative enough.
func personLinkName(link string) string {
	if idx := strings.LastIndex(link, "~"); idx >= 0 {
		return link[idx+1:]
	}
	return ""
}

// teamLink renders a person/team name as the API link form search
// parameters expect.
func (c *Client) teamLink(name string) string {
	return c.BaseURL + "/~" + name
}

// doGET performs one GET with retry on throttling, server errors, and
// transient network failures. Client errors other than 429 fail permanently.
func (c *Client) doGET(ctx context.Context, urlStr string) ([]byte, error) {
	var body []byte

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		if c.Token != "" {
			req.Header.Set("Authorization", "OAuth "+c.Token)
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		const maxResponseSize = 50 * 1024 * 1024
		body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("launchpad returned %d for %s", resp.StatusCode, urlStr)
		default:
			return backoff.Permanent(fmt.Errorf("launchpad returned %d for %s: %s",
				resp.StatusCode, urlStr, strings.TrimSpace(string(body))))
		}
	}

	err := backoff.Retry(attempt, backoff.WithContext(
		backoff.WithMaxRetries(bo, MaxRetries), ctx))
	if err != nil {
		return nil, err
	}
	return body, nil
}

// searchTasks runs one ws.op=searchTasks query against the distribution and
// follows next_collection_link until the collection is exhausted.
func (c *Client) searchTasks(ctx context.Context, params url.Values) ([]BugTask, error) {
	params.Set("ws.op", "searchTasks")
	next := fmt.Sprintf("%s/%s?%s", c.BaseURL, c.Distribution, params.Encode())

	var tasks []BugTask
	for page := 0; next != ""; page++ {
		if page >= MaxPages {
			return nil, fmt.Errorf("task search exceeded %d pages", MaxPages)
		}

		body, err := c.doGET(ctx, next)
		if err != nil {
			return nil, err
		}

		var coll taskCollection
		if err := json.Unmarshal(body, &coll); err != nil {
			return nil, fmt.Errorf("failed to decode task collection: %w", err)
		}

		tasks = append(tasks, coll.Entries...)
		next = coll.NextCollectionLink
	}

	debug.Logf("launchpad: search returned %d tasks\n", len(tasks))
	return tasks, nil
}

// TasksModifiedSince returns bug tasks whose bug was modified at or after
// the given time. The server filter is a lower bound only; the filter
// engine narrows results to the exact requested range.
func (c *Client) TasksModifiedSince(ctx context.Context, since time.Time) ([]BugTask, error) {
	params := url.Values{}
	params.Set("modified_since", since.UTC().Format(time.RFC3339))
	return c.searchTasks(ctx, params)
}

// TasksForStructuralSubscriber returns bug tasks covered by a team's
// structural subscription.
func (c *Client) TasksForStructuralSubscriber(ctx context.Context, team string) ([]BugTask, error) {
	params := url.Values{}
	params.Set("structural_subscriber", c.teamLink(team))
	return c.searchTasks(ctx, params)
}

// TasksForSubscriber returns bug tasks the given person or team is directly
// subscribed to.
func (c *Client) TasksForSubscriber(ctx context.Context, name string) ([]BugTask, error) {
	params := url.Values{}
	params.Set("bug_subscriber", c.teamLink(name))
	return c.searchTasks(ctx, params)
}

// TasksWithTag returns bug tasks whose bug carries the given tag.
func (c *Client) TasksWithTag(ctx context.Context, tag string) ([]BugTask, error) {
	params := url.Values{}
	params.Set("tags", tag)
	return c.searchTasks(ctx, params)
}

// FetchBug retrieves the bug resource behind a task's bug_link.
func (c *Client) FetchBug(ctx context.Context, bugLink string) (*Bug, error) {
	body, err := c.doGET(ctx, bugLink)
	if err != nil {
		return nil, err
	}
	var bug Bug
	if err := json.Unmarshal(body, &bug); err != nil {
		return nil, fmt.Errorf("failed to decode bug: %w", err)
	}
	return &bug, nil
}

// FetchSubscribers returns the short names of the bug's direct subscribers.
func (c *Client) FetchSubscribers(ctx context.Context, bugLink string) ([]string, error) {
	next := bugLink + "/subscriptions"

	var names []string
	for page := 0; next != ""; page++ {
		if page >= MaxPages {
			return nil, fmt.Errorf("subscription listing exceeded %d pages", MaxPages)
		}

		body, err := c.doGET(ctx, next)
		if err != nil {
			return nil, err
		}

		var coll subscriptionCollection
		if err := json.Unmarshal(body, &coll); err != nil {
			return nil, fmt.Errorf("failed to decode subscriptions: %w", err)
		}
		for _, sub := range coll.Entries {
			if name := personLinkName(sub.PersonLink); name != "" {
				names = append(names, name)
			}
		}
		next = coll.NextCollectionLink
	}
	return names, nil
}

// Annotator lets callers stamp query-level context onto adapted records,
// e.g. marking every result of a structural-subscriber search with the
// team name. May be nil.
type Annotator func(*types.BugRecord)

// FetchRecords resolves a task list into normalized bug records. Bug detail
// and subscription lookups run with bounded concurrency; records that fail
// adaptation are logged and skipped rather than failing the run.
func (c *Client) FetchRecords(ctx context.Context, tasks []BugTask, annotate Annotator) ([]types.BugRecord, error) {
	results := make([]*types.BugRecord, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bugFetchConcurrency)

	for i, task := range tasks {
		g.Go(func() error {
			bug, err := c.FetchBug(gctx, task.BugLink)
			if err != nil {
				return err
			}
			subscribers, err := c.FetchSubscribers(gctx, task.BugLink)
			if err != nil {
				return err
			}

			rec, err := Adapt(task, *bug, subscribers)
			if err != nil {
				debug.Logf("launchpad: skipping malformed record %s: %v\n", task.BugLink, err)
				return nil
			}
			if annotate != nil {
				annotate(&rec)
			}
			results[i] = &rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]types.BugRecord, 0, len(results))
	for _, rec := range results {
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records, nil
}
