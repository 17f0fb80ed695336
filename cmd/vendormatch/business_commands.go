package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newBusinessCommand(ctx *commandContext) *cobra.Command {
	businessCmd := &cobra.Command{
		Use:   "business",
		Short: "Manage catalog businesses",
	}

	businessCmd.AddCommand(newBusinessAddCommand(ctx))
	businessCmd.AddCommand(newBusinessListCommand(ctx))
	businessCmd.AddCommand(newBusinessDeleteCommand(ctx))
	businessCmd.AddCommand(newBusinessRenameCommand(ctx))

	return businessCmd
}

func newBusinessAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a business (registers its name as a keyword)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svc *services) error {
				name := args[0]
				id, ok, err := svc.manager.AddBusiness(cmd.Context(), name)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("business %q was not added (empty name or already exists)", name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added business %q (id %d)\n", name, id)
				return nil
			})
		},
	}
}

func newBusinessListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List businesses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svc *services) error {
				businesses, err := svc.manager.Businesses(cmd.Context())
				if err != nil {
					return err
				}

				if ctx.jsonOutput() {
					type businessView struct {
						ID        int64     `json:"id"`
						Name      string    `json:"name"`
						CreatedAt time.Time `json:"created_at"`
					}
					views := make([]businessView, 0, len(businesses))
					for _, b := range businesses {
						views = append(views, businessView{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt})
					}
					return writeJSON(cmd, views)
				}

				if len(businesses) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty")
					return nil
				}
				rows := make([][]string, 0, len(businesses))
				for _, b := range businesses {
					count, err := svc.store.KeywordCount(cmd.Context(), b.ID)
					if err != nil {
						return err
					}
					rows = append(rows, []string{
						strconv.FormatInt(b.ID, 10),
						b.Name,
						strconv.FormatInt(count, 10),
						b.CreatedAt.Local().Format("2006-01-02"),
					})
				}
				out := renderTable(
					[]string{"ID", "Name", "Keywords", "Created"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

func newBusinessDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a business and all of its keywords",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svc *services) error {
				name := args[0]
				ok, err := svc.manager.DeleteBusiness(cmd.Context(), name)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("business %q not found", name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted business %q\n", name)
				return nil
			})
		},
	}
}

func newBusinessRenameCommand(ctx *commandContext) *cobra.Command {
	var keywordFlag string
	var toKeywordFlag string
	var caseSensitive bool
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "rename OLD_NAME NEW_NAME",
		Short: "Rename a business, optionally renaming one of its keywords in the same transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withServices(func(svc *services) error {
				// Without --keyword the default keyword (the business name
				// itself) is renamed along with the business.
				oldKeyword := keywordFlag
				newKeyword := toKeywordFlag
				if oldKeyword == "" && newKeyword != "" {
					return fmt.Errorf("--to requires --keyword")
				}
				if oldKeyword == "" {
					oldKeyword = args[0]
					newKeyword = args[1]
				} else if newKeyword == "" {
					newKeyword = oldKeyword
				}
				kind, err := resolveMatchKind(kindFlag)
				if err != nil {
					return err
				}

				ok, err := svc.manager.UpdateBusinessAndKeyword(
					cmd.Context(), args[0], args[1], oldKeyword, newKeyword, caseSensitive, kind,
				)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("rename failed (business missing, keyword missing, or the new name collides)")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed business %q to %q\n", args[0], args[1])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&keywordFlag, "keyword", "", "Existing keyword to update alongside the rename")
	cmd.Flags().StringVar(&toKeywordFlag, "to", "", "New text for the keyword named by --keyword")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Mark the updated keyword case sensitive")
	cmd.Flags().StringVar(&kindFlag, "kind", "exact", "Match kind for the updated keyword (exact or fuzzy)")
	return cmd
}
