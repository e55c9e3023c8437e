package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/cyrup-ai/get.cyrup.ai/core"
	"github.com/cyrup-ai/get.cyrup.ai/types"
)

var (
	flagSearchAnd      bool
	flagSearchNoExpand bool
	flagSearchLimit    int
	flagSearchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search <index-file> <query...>",
	Short: "Query a searchindex.json or searchindex.js file",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&flagSearchAnd, "and", false, "Require every query term to match")
	searchCmd.Flags().BoolVar(&flagSearchNoExpand, "no-expand", false, "Disable prefix expansion of query terms")
	searchCmd.Flags().IntVarP(&flagSearchLimit, "limit", "n", 0, "Number of results to show (default: the index's limit_results)")
	searchCmd.Flags().BoolVar(&flagSearchJSON, "json", false, "Print results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	searchIndex, err := core.LoadFile(args[0])
	if err != nil {
		return err
	}

	options := searchIndex.SearchOptions
	if flagSearchAnd {
		options.Bool = types.BoolAnd
	}
	if flagSearchNoExpand {
		options.Expand = false
	}
	response := searchIndex.SearchWithOptions(types.SearchRequest{
		Text:          strings.Join(args[1:], " "),
		SearchOptions: &options,
		RankOptions:   &types.RankOptions{MaxOutputs: flagSearchLimit},
	})

	if flagSearchJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(response)
	}

	out := cmd.OutOrStdout()
	if len(response.Docs) == 0 {
		fmt.Fprintf(out, "No results for %v.\n", response.Tokens)
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, doc := range response.Docs {
		fmt.Fprintf(w, "%d.\t[%.3f]\t%s\t%s\n", i+1, doc.Score, doc.URL, doc.Breadcrumbs)
		if doc.Teaser != "" {
			fmt.Fprintf(w, "\t\t%s\t\n", doc.Teaser)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if response.Total > len(response.Docs) {
		fmt.Fprintf(out, "(%d of %d results)\n", len(response.Docs), response.Total)
	}
	return nil
}
