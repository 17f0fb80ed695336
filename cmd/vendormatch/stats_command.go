package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var mostUsed int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog usage statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svc *services) error {
				summary, err := svc.aggregator.Summary(cmd.Context())
				if err != nil {
					return err
				}
				ranked, err := svc.aggregator.MostUsed(cmd.Context(), mostUsed)
				if err != nil {
					return err
				}

				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{
						"total_businesses":   summary.TotalBusinesses,
						"total_keywords":     summary.TotalKeywords,
						"total_usage":        summary.TotalUsage,
						"keyword_efficiency": summary.KeywordEfficiency,
						"most_used":          buildKeywordViews(ranked),
					})
				}

				out := cmd.OutOrStdout()
				summaryTable := renderTable(
					[]string{"Metric", "Value"},
					[][]string{
						{"Businesses", strconv.FormatInt(summary.TotalBusinesses, 10)},
						{"Keywords", strconv.FormatInt(summary.TotalKeywords, 10)},
						{"Total usage", strconv.FormatInt(summary.TotalUsage, 10)},
						{"Keyword efficiency", fmt.Sprintf("%.1f%%", summary.KeywordEfficiency)},
					},
					[]columnAlignment{alignLeft, alignRight},
				)
				fmt.Fprintln(out, summaryTable)

				if len(ranked) > 0 {
					fmt.Fprintln(out, "\nMost used keywords:")
					fmt.Fprintln(out, renderTable(keywordHeaders, buildKeywordRows(ranked), keywordAligns))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&mostUsed, "most-used", 10, "Number of keywords in the most-used ranking")
	return cmd
}
