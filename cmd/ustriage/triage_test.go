package main

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/ustriage/internal/config"
	"github.com/canonical/ustriage/internal/expiry"
	"github.com/canonical/ustriage/internal/filter"
	"github.com/canonical/ustriage/internal/report"
	"github.com/canonical/ustriage/internal/types"
)

func testConfig() *config.Config {
	return &config.Config{
		Team:             "ubuntu-server",
		Tag:              "server-next",
		ExpireDays:       180,
		ExpireTaggedDays: 60,
		LinkStyle:        "short",
	}
}

// setFlags applies flag values to the root command and restores defaults
// when the test finishes.
func setFlags(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		require.NoError(t, rootCmd.Flags().Set(k, v))
	}
	t.Cleanup(func() {
		flags := rootCmd.Flags()
		flags.VisitAll(func(f *pflag.Flag) {
			_ = flags.Set(f.Name, f.DefValue)
			f.Changed = false
		})
		showCategories = []string{"triage"}
	})
}

func TestParseDateArgs(t *testing.T) {
	now := time.Date(2016, 9, 14, 10, 0, 0, 0, time.UTC)

	t.Run("no args defaults to yesterday", func(t *testing.T) {
		r, err := parseDateArgs(nil, now)
		require.NoError(t, err)
		assert.Equal(t, 13, r.Start.Day())
		assert.Equal(t, r.Start, r.End)
	})

	t.Run("one arg covers a single day", func(t *testing.T) {
		r, err := parseDateArgs([]string{"2016-09-10"}, now)
		require.NoError(t, err)
		assert.Equal(t, 10, r.Start.Day())
		assert.Equal(t, r.Start, r.End)
	})

	t.Run("two args form a range", func(t *testing.T) {
		r, err := parseDateArgs([]string{"2016-09-10", "2016-09-12"}, now)
		require.NoError(t, err)
		assert.Equal(t, 10, r.Start.Day())
		assert.Equal(t, 12, r.End.Day())
	})

	t.Run("malformed date fails", func(t *testing.T) {
		_, err := parseDateArgs([]string{"zzz"}, now)
		assert.Error(t, err)
	})

	t.Run("mixed-form arguments naming the same day", func(t *testing.T) {
		// "yesterday" resolves with a time of day, the absolute form to
		// midnight; both must land on the same calendar date and pass
		// validation as a single-day range.
		base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
		r, err := parseDateArgs([]string{"yesterday", "2025-01-14"}, base)
		require.NoError(t, err)
		assert.Equal(t, r.Start, r.End)
		assert.Equal(t, 0, r.Start.Hour())
		assert.Equal(t, 14, r.Start.Day())

		spec := filter.DefaultSpec()
		spec.DateRange = r
		assert.NoError(t, spec.Validate())
	})
}

func TestResolveOptionsDefaults(t *testing.T) {
	now := time.Date(2016, 9, 14, 10, 0, 0, 0, time.UTC)

	opts, err := resolveOptions(rootCmd, nil, testConfig(), now)
	require.NoError(t, err)

	assert.Equal(t, "ubuntu-server", opts.spec.SubjectName)
	assert.Equal(t, "server-next", opts.spec.Tag)
	assert.True(t, opts.spec.ShowTriage)
	assert.False(t, opts.spec.ShowTagged)
	assert.Equal(t, report.LinkShort, opts.reportOpts.LinkStyle)
	assert.Equal(t, 180, opts.policy.GeneralThresholdDays)
	assert.Equal(t, 60, opts.policy.TaggedThresholdDays)
}

func TestResolveOptionsFlagsOverrideConfig(t *testing.T) {
	now := time.Date(2016, 9, 14, 10, 0, 0, 0, time.UTC)
	setFlags(t, map[string]string{
		"lp-user":     "powersj",
		"sub-kind":    "direct",
		"tag":         "bitesize",
		"expire-days": "30",
		"full-urls":   "true",
		"show":        "tagged,subscribed",
	})

	opts, err := resolveOptions(rootCmd, nil, testConfig(), now)
	require.NoError(t, err)

	assert.Equal(t, "powersj", opts.spec.SubjectName)
	assert.Equal(t, filter.SubscriptionDirect, opts.spec.SubscriptionKind)
	assert.Equal(t, "bitesize", opts.spec.Tag)
	assert.False(t, opts.spec.ShowTriage)
	assert.True(t, opts.spec.ShowTagged)
	assert.True(t, opts.spec.ShowSubscribed)
	assert.Equal(t, 30, opts.policy.GeneralThresholdDays)
	// Tracked tag follows the effective tag.
	assert.Equal(t, "bitesize", opts.policy.TrackedTag)
	assert.Equal(t, report.LinkFull, opts.reportOpts.LinkStyle)
}

func TestResolveOptionsRejectsUnknownCategory(t *testing.T) {
	now := time.Date(2016, 9, 14, 10, 0, 0, 0, time.UTC)
	setFlags(t, map[string]string{"show": "everything"})

	_, err := resolveOptions(rootCmd, nil, testConfig(), now)
	assert.Error(t, err)
}

func TestResolveOptionsRejectsReversedRange(t *testing.T) {
	now := time.Date(2016, 9, 14, 10, 0, 0, 0, time.UTC)

	_, err := resolveOptions(rootCmd, []string{"2016-09-12", "2016-09-10"}, testConfig(), now)
	require.Error(t, err)
	assert.ErrorIs(t, err, filter.ErrInvalidSpec)
}

func TestClassifyAll(t *testing.T) {
	now := time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []types.BugRecord{
		{ID: 1, LastUpdated: now.AddDate(0, 0, -200)},
		{ID: 2, LastUpdated: now.AddDate(0, 0, -5)},
	}
	policy := expiry.DefaultPolicy()

	infos := classifyAll(records, now, policy, false)
	require.Len(t, infos, 2)
	assert.True(t, infos[1].Expired)
	assert.False(t, infos[2].Expired)

	// Disabled classification yields no annotations at all, not
	// all-false entries.
	assert.Nil(t, classifyAll(records, now, policy, true))
}
