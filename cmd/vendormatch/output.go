package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vendormatch/internal/catalog"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatConfidence(confidence float64) string {
	return fmt.Sprintf("%.2f", confidence)
}

func formatLastUsed(lastUsed *time.Time) string {
	if lastUsed == nil {
		return "never"
	}
	return lastUsed.Local().Format("2006-01-02 15:04")
}

func buildKeywordRows(keywords []*catalog.Keyword) [][]string {
	rows := make([][]string, 0, len(keywords))
	for _, kw := range keywords {
		rows = append(rows, []string{
			strconv.FormatInt(kw.ID, 10),
			kw.BusinessName,
			kw.Text,
			yesNo(kw.CaseSensitive),
			string(kw.Kind),
			strconv.FormatInt(kw.UsageCount, 10),
			formatLastUsed(kw.LastUsed),
		})
	}
	return rows
}

var keywordHeaders = []string{"ID", "Business", "Keyword", "Case", "Kind", "Uses", "Last Used"}

var keywordAligns = []columnAlignment{
	alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft,
}

// keywordView is the JSON shape for keyword listings.
type keywordView struct {
	ID            int64      `json:"id"`
	Business      string     `json:"business"`
	Keyword       string     `json:"keyword"`
	CaseSensitive bool       `json:"case_sensitive"`
	MatchKind     string     `json:"match_kind"`
	UsageCount    int64      `json:"usage_count"`
	LastUsed      *time.Time `json:"last_used,omitempty"`
}

func buildKeywordViews(keywords []*catalog.Keyword) []keywordView {
	views := make([]keywordView, 0, len(keywords))
	for _, kw := range keywords {
		views = append(views, keywordView{
			ID:            kw.ID,
			Business:      kw.BusinessName,
			Keyword:       kw.Text,
			CaseSensitive: kw.CaseSensitive,
			MatchKind:     string(kw.Kind),
			UsageCount:    kw.UsageCount,
			LastUsed:      kw.LastUsed,
		})
	}
	return views
}
