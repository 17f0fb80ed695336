package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vendormatch/internal/catalog"
)

func newKeywordCommand(ctx *commandContext) *cobra.Command {
	keywordCmd := &cobra.Command{
		Use:   "keyword",
		Short: "Manage business keywords",
	}

	keywordCmd.AddCommand(newKeywordAddCommand(ctx))
	keywordCmd.AddCommand(newKeywordListCommand(ctx))
	keywordCmd.AddCommand(newKeywordDeleteCommand(ctx))

	return keywordCmd
}

func resolveMatchKind(value string) (catalog.MatchKind, error) {
	if value == "" {
		return catalog.MatchKindExact, nil
	}
	return catalog.ParseMatchKind(value)
}

func newKeywordAddCommand(ctx *commandContext) *cobra.Command {
	var caseSensitive bool
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "add BUSINESS KEYWORD",
		Short: "Add a keyword to a business",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svc *services) error {
				kind, err := resolveMatchKind(kindFlag)
				if err != nil {
					return err
				}
				ok, err := svc.manager.AddKeyword(cmd.Context(), args[0], args[1], caseSensitive, kind)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("keyword %q was not added (business missing, empty keyword, or duplicate)", args[1])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added keyword %q to %q\n", args[1], args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Penalize matches that do not respect the keyword's case")
	cmd.Flags().StringVar(&kindFlag, "kind", "exact", "Match kind (exact or fuzzy)")
	return cmd
}

func newKeywordListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list [BUSINESS]",
		Short: "List keywords, optionally for a single business",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svc *services) error {
				var keywords []*catalog.Keyword
				var err error
				if len(args) == 1 {
					keywords, err = svc.manager.Keywords(cmd.Context(), args[0])
				} else {
					keywords, err = svc.manager.AllKeywords(cmd.Context())
				}
				if err != nil {
					return err
				}

				if ctx.jsonOutput() {
					return writeJSON(cmd, buildKeywordViews(keywords))
				}
				if len(keywords) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No keywords found")
					return nil
				}
				out := renderTable(keywordHeaders, buildKeywordRows(keywords), keywordAligns)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

func newKeywordDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete BUSINESS KEYWORD",
		Short: "Delete a keyword (removing the last keyword removes the business)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svc *services) error {
				wasLast, err := svc.manager.IsLastKeyword(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				ok, err := svc.manager.DeleteKeyword(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("keyword %q not found for business %q", args[1], args[0])
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Deleted keyword %q from %q\n", args[1], args[0])
				if wasLast {
					fmt.Fprintf(out, "Business %q had no keywords left and was removed\n", args[0])
				}
				return nil
			})
		},
	}
}
