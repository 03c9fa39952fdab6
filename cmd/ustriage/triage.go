package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/ustriage/internal/config"
	"github.com/canonical/ustriage/internal/debug"
	"github.com/canonical/ustriage/internal/expiry"
	"github.com/canonical/ustriage/internal/filter"
	"github.com/canonical/ustriage/internal/launchpad"
	"github.com/canonical/ustriage/internal/report"
	"github.com/canonical/ustriage/internal/timeparsing"
	"github.com/canonical/ustriage/internal/types"
)

// options is the fully resolved invocation: flags merged over config over
// built-in defaults.
type options struct {
	spec        filter.Spec
	policy      expiry.Policy
	reportOpts  report.Options
	noExpire    bool
	openBrowser bool
}

// resolveOptions merges positional date arguments, flags, and config into
// one options value. Flag values win only when the flag was set on the
// command line.
func resolveOptions(cmd *cobra.Command, args []string, cfg *config.Config, now time.Time) (*options, error) {
	spec := filter.Spec{
		SubjectName:      cfg.Team,
		SubscriptionKind: filter.SubscriptionKind(subKind),
		Tag:              cfg.Tag,
	}
	if cmd.Flags().Changed("lp-user") {
		spec.SubjectName = lpUser
	}
	if cmd.Flags().Changed("tag") {
		spec.Tag = tag
	}

	for _, cat := range showCategories {
		switch cat {
		case "triage":
			spec.ShowTriage = true
		case "tagged":
			spec.ShowTagged = true
		case "subscribed":
			spec.ShowSubscribed = true
		default:
			return nil, fmt.Errorf("unknown report category %q (want triage, tagged, or subscribed)", cat)
		}
	}

	dateRange, err := parseDateArgs(args, now)
	if err != nil {
		return nil, err
	}
	spec.DateRange = dateRange

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	policy := expiry.Policy{
		GeneralThresholdDays: cfg.ExpireDays,
		TaggedThresholdDays:  cfg.ExpireTaggedDays,
		TrackedTag:           spec.Tag,
	}
	if cmd.Flags().Changed("expire-days") {
		policy.GeneralThresholdDays = expireDays
	}
	if cmd.Flags().Changed("expire-tagged-days") {
		policy.TaggedThresholdDays = expireTaggedDays
	}

	linkStyle := report.LinkShort
	if fullURLs || (cfg.LinkStyle == "full" && !cmd.Flags().Changed("full-urls")) {
		linkStyle = report.LinkFull
	}

	return &options{
		spec:   spec,
		policy: policy,
		reportOpts: report.Options{
			LinkStyle: linkStyle,
			Extended:  extendedFlag,
		},
		noExpire:    noExpiration,
		openBrowser: openFlag || cfg.OpenBrowser,
	}, nil
}

// parseDateArgs resolves zero, one, or two positional dates into the triage
// range. No arguments means yesterday; one argument covers that single day.
func parseDateArgs(args []string, now time.Time) (*filter.DateRange, error) {
	switch len(args) {
	case 0:
		yesterday := now.AddDate(0, 0, -1)
		return filter.NewDateRange(yesterday, time.Time{}), nil
	case 1:
		start, err := timeparsing.ParseDate(args[0], now)
		if err != nil {
			return nil, err
		}
		return filter.NewDateRange(start, time.Time{}), nil
	default:
		start, err := timeparsing.ParseDate(args[0], now)
		if err != nil {
			return nil, err
		}
		end, err := timeparsing.ParseDate(args[1], now)
		if err != nil {
			return nil, err
		}
		return filter.NewDateRange(start, end), nil
	}
}

// classifyAll runs the expiry classifier over a record list. Returns nil
// when classification is disabled so the formatter omits all annotations.
func classifyAll(records []types.BugRecord, now time.Time, policy expiry.Policy, disabled bool) map[int]expiry.Info {
	if disabled {
		return nil
	}
	infos := make(map[int]expiry.Info, len(records))
	for _, rec := range records {
		infos[rec.ID] = expiry.Classify(rec, now, policy)
	}
	return infos
}

// category is one produced report list, ready for printing.
type category struct {
	name    string
	records []types.BugRecord
	opts    report.Options
}

// printCategory writes one report section to stdout and returns the bug
// URLs it contains.
func printCategory(cat category, now time.Time, policy expiry.Policy, noExpire bool) []string {
	fmt.Println(report.SectionHeader(cat.name, len(cat.records)))
	fmt.Println(report.Header(cat.opts))

	expirations := classifyAll(cat.records, now, policy, noExpire)
	for _, line := range report.Format(cat.records, cat.opts, expirations) {
		fmt.Println(line)
	}
	fmt.Println()

	return report.URLs(cat.records)
}

func runTriage(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	opts, err := resolveOptions(cmd, args, cfg, now)
	if err != nil {
		return err
	}

	client := launchpad.NewClient(os.Getenv("USTRIAGE_LP_TOKEN"))
	if apiRoot != "" {
		client = client.WithBaseURL(apiRoot)
	}

	ctx := cmd.Context()
	categories, err := fetchCategories(ctx, client, opts)
	if err != nil {
		return fmt.Errorf("launchpad query failed: %w", err)
	}

	var urls []string
	for _, cat := range categories {
		urls = append(urls, printCategory(cat, now, opts.policy, opts.noExpire)...)
	}

	if opts.openBrowser {
		for _, u := range urls {
			openBrowser(u)
		}
	}
	return nil
}

// fetchCategories runs one Launchpad query per enabled report category and
// filters each result set with that category's predicate. Lists are
// independent: a bug matching several criteria appears in each of them.
func fetchCategories(ctx context.Context, client *launchpad.Client, opts *options) ([]category, error) {
	var categories []category
	spec := opts.spec

	if spec.ShowTriage {
		tasks, err := client.TasksModifiedSince(ctx, spec.DateRange.Start)
		if err != nil {
			return nil, err
		}
		records, err := client.FetchRecords(ctx, tasks, nil)
		if err != nil {
			return nil, err
		}
		debug.Logf("triage: %d tasks fetched\n", len(records))
		categories = append(categories, category{
			name:    report.SectionTriage,
			records: filter.Triage(records, spec),
			opts:    opts.reportOpts,
		})
	}

	if spec.ShowTagged {
		tasks, err := client.TasksWithTag(ctx, spec.Tag)
		if err != nil {
			return nil, err
		}
		records, err := client.FetchRecords(ctx, tasks, nil)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category{
			name:    report.SectionTagged,
			records: filter.Tagged(records, spec),
			opts:    opts.reportOpts,
		})
	}

	if spec.ShowSubscribed {
		var tasks []launchpad.BugTask
		var err error
		var annotate launchpad.Annotator
		if spec.SubscriptionKind == filter.SubscriptionDirect {
			tasks, err = client.TasksForSubscriber(ctx, spec.SubjectName)
		} else {
			tasks, err = client.TasksForStructuralSubscriber(ctx, spec.SubjectName)
			team := spec.SubjectName
			annotate = func(rec *types.BugRecord) {
				rec.StructuralSubscriberTeams = append(rec.StructuralSubscriberTeams, team)
			}
		}
		if err != nil {
			return nil, err
		}
		records, err := client.FetchRecords(ctx, tasks, annotate)
		if err != nil {
			return nil, err
		}

		subOpts := opts.reportOpts
		subOpts.MaxEntries = subscribedCap
		categories = append(categories, category{
			name:    report.SectionSubscribed,
			records: filter.Subscribed(records, spec),
			opts:    subOpts,
		})
	}

	return categories, nil
}
