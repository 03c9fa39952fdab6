// ustriage reports Launchpad bugs for daily server-team triage: bugs
// updated in a date range, bugs carrying the tracked tag, and bugs the
// team is subscribed to, with dormant bugs flagged for expiration.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canonical/ustriage/internal/debug"
	"github.com/canonical/ustriage/internal/ui"
)

// Version information, set at build time via -ldflags.
var (
	Version = "dev"
	Build   = "unknown"
)

var (
	lpUser           string
	subKind          string
	tag              string
	expireDays       int
	expireTaggedDays int
	noExpiration     bool
	extendedFlag     bool
	fullURLs         bool
	openFlag         bool
	showCategories   []string
	subscribedCap    int
	apiRoot          string
	noColorFlag      bool
	verboseFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "ustriage [start-date [end-date]]",
	Short: "ustriage - Launchpad bug triage reports for the server team",
	Long: `Query Launchpad for bugs needing triage and print them as aligned,
linkable lists.

Dates accept the 2006-01-02 form, compact offsets (-1d, -2w), or natural
language ("yesterday", "last monday"). With one date the report covers that
single day; with none it covers yesterday.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("ustriage version %s (%s)\n", Version, Build)
			return nil
		}
		debug.SetVerbose(verboseFlag)
		ui.Init(noColorFlag)
		return runTriage(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&lpUser, "lp-user", "u", "", "Launchpad team or user to report on (default from config: ubuntu-server)")
	flags.StringVar(&subKind, "sub-kind", "structural", "Subscription kind for the subscribed list (structural|direct)")
	flags.StringVarP(&tag, "tag", "t", "", "Tag for the tagged list and expiration tracking (default from config: server-next)")
	flags.IntVar(&expireDays, "expire-days", 0, "General inactivity threshold in days (default from config: 180)")
	flags.IntVar(&expireTaggedDays, "expire-tagged-days", 0, "Inactivity threshold for tracked-tag bugs in days (default from config: 60)")
	flags.BoolVar(&noExpiration, "no-expiration", false, "Skip expiration classification entirely")
	flags.BoolVarP(&extendedFlag, "extended", "e", false, "Show last-updated date, importance, and assignee per bug")
	flags.BoolVar(&fullURLs, "full-urls", false, "Render full bug URLs instead of LP: # shortlinks")
	flags.BoolVarP(&openFlag, "open", "o", false, "Open the reported bugs in a browser")
	flags.StringSliceVar(&showCategories, "show", []string{"triage"}, "Report categories to produce (triage,tagged,subscribed)")
	flags.IntVarP(&subscribedCap, "cap", "c", 0, "Cap the subscribed list to N newest plus N oldest entries (0 = unlimited)")
	flags.StringVar(&apiRoot, "api-root", "", "Launchpad API root (testing)")
	flags.BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	flags.BoolP("version", "V", false, "Print version information")
	_ = flags.MarkHidden("api-root")

	rootCmd.AddCommand(versionCmd, configCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("ustriage version %s (%s)\n", Version, Build)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
