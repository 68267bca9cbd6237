package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/naka-gawa/portfolio-stats/internal/config"
	"github.com/naka-gawa/portfolio-stats/internal/domain"
	"github.com/naka-gawa/portfolio-stats/internal/gateway"
	"github.com/naka-gawa/portfolio-stats/internal/usecase"
	"github.com/spf13/cobra"
)

// summaryRows is how many languages and repositories the console summary lists.
const summaryRows = 5

var locCmd = &cobra.Command{
	Use:   "loc",
	Short: "Estimates total lines of code across a GitHub user's repositories",
	Long: `Lists every repository of a GitHub user, estimates lines of code from the
repository size, primary language, age, activity and fork status, prints a
summary and writes the full report as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger := newLogger(cmd, cmd.ErrOrStderr(), cfg.LogLevel)

		if account, _ := cmd.Flags().GetString("account"); account != "" {
			cfg.GitHub.Account = account
		}
		if output, _ := cmd.Flags().GetString("output"); output != "" {
			cfg.Output.Path = output
		}
		cfg.GitHub.WaitOnRateLimit, _ = cmd.Flags().GetBool("wait-rate-limit")

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(cfg.GitHub, logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		estimator := usecase.NewEstimator(usecase.DefaultLanguageMultipliers(), nil)
		aggregator := usecase.NewAggregator(githubGateway, estimator, logger)

		report, listing := aggregator.Aggregate(ctx, cfg.GitHub.Account)

		printLOCSummary(cmd.OutOrStdout(), report, listing)

		if err := gateway.WriteJSON(cfg.Output.Path, report); err != nil {
			return err
		}
		logger.WithField("path", cfg.Output.Path).Info("Report written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locCmd)
	locCmd.Flags().StringP("account", "a", "", "GitHub user name (default $GITHUB_USERNAME or "+config.DefaultAccount+")")
	locCmd.Flags().StringP("output", "o", "", "Report path (default $LOC_OUTPUT_PATH or "+config.DefaultOutputPath+")")
	locCmd.Flags().Bool("wait-rate-limit", false, "Sleep through GitHub secondary rate limits instead of stopping")
}

func printLOCSummary(w io.Writer, report *domain.AggregateReport, listing domain.RepositoryListing) {
	heading := color.New(color.Bold)

	fmt.Fprintln(w)
	heading.Fprintln(w, "Lines of Code Analysis (75% Confidence Target)")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Total LOC: %s\n", humanize.Comma(int64(report.TotalLOC)))
	fmt.Fprintf(w, "Confidence: %s\n", report.ConfidencePercent)
	fmt.Fprintf(w, "Total Repos: %d\n", report.TotalRepos)
	if listing.Truncated {
		color.New(color.FgYellow).Fprintf(w, "Warning: repository listing stopped early after %d page(s); totals may undercount\n", listing.Pages)
	}

	fmt.Fprintln(w)
	heading.Fprintln(w, "Language Breakdown:")
	for i, entry := range report.LanguageBreakdown {
		if i == summaryRows {
			break
		}
		fmt.Fprintf(w, "  %s: %s lines\n", entry.Language, humanize.Comma(int64(entry.Lines)))
	}

	fmt.Fprintln(w)
	heading.Fprintln(w, "Top Repositories by LOC:")
	for i, repo := range report.TopRepos {
		if i == summaryRows {
			break
		}
		fmt.Fprintf(w, "  %s: %s lines (%s)\n", repo.Name, humanize.Comma(int64(repo.EstimatedLOC)), repo.LanguageName())
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Methodology: %s\n", report.Methodology)
}
