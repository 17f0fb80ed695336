package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vendormatch/internal/matching"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var record bool
	var amongBusinesses []string

	cmd := &cobra.Command{
		Use:   "match TEXT",
		Short: "Resolve a text fragment to a catalog business",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svc *services) error {
				var match *matching.Match
				var err error
				if len(amongBusinesses) > 0 {
					match, err = svc.matcher.MatchAmong(cmd.Context(), args[0], amongBusinesses)
				} else {
					match, err = svc.matcher.Match(cmd.Context(), args[0])
				}
				if err != nil {
					return err
				}

				if match == nil {
					if ctx.jsonOutput() {
						return writeJSON(cmd, map[string]any{"matched": false})
					}
					fmt.Fprintln(cmd.OutOrStdout(), "No match")
					return nil
				}

				recorded := false
				if record {
					recorded, err = svc.aggregator.RecordUsageByID(cmd.Context(), match.KeywordID)
					if err != nil {
						return err
					}
				}

				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{
						"matched":    true,
						"business":   match.Business,
						"keyword":    match.Keyword,
						"match_kind": string(match.Kind),
						"confidence": match.Confidence,
						"recorded":   recorded,
					})
				}

				out := cmd.OutOrStdout()
				table := renderTable(
					[]string{"Business", "Keyword", "Kind", "Confidence"},
					[][]string{{match.Business, match.Keyword, string(match.Kind), formatConfidence(match.Confidence)}},
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
				)
				fmt.Fprintln(out, table)
				if recorded {
					fmt.Fprintln(out, "Usage recorded")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&record, "record", false, "Record usage on the winning keyword")
	cmd.Flags().StringSliceVar(&amongBusinesses, "among", nil, "Restrict matching to the named businesses")
	return cmd
}
