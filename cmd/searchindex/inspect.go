package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cyrup-ai/get.cyrup.ai/core"
)

var (
	flagInspectField  string
	flagInspectPrefix string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <index-file>",
	Short: "Print index metadata and per-field token statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&flagInspectField, "field", "", "List the tokens of this field")
	inspectCmd.Flags().StringVar(&flagInspectPrefix, "prefix", "", "Only list tokens starting with this prefix")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	searchIndex, err := core.LoadFile(args[0])
	if err != nil {
		return err
	}
	index := searchIndex.Index
	out := cmd.OutOrStdout()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "version\t%s\n", index.Version())
	fmt.Fprintf(w, "lang\t%s\n", index.Lang())
	fmt.Fprintf(w, "ref\t%s\n", index.Ref())
	fmt.Fprintf(w, "pipeline\t%v\n", index.Pipeline())
	fmt.Fprintf(w, "documents\t%d (saved: %v)\n", index.DocumentStore().Len(), index.DocumentStore().IsSaved())
	fmt.Fprintf(w, "doc_urls\t%d\n", len(searchIndex.DocURLs))
	fmt.Fprintf(w, "search\tbool=%s expand=%v\n", searchIndex.SearchOptions.Bool, searchIndex.SearchOptions.Expand)
	fmt.Fprintf(w, "results\tlimit=%d teaser=%d\n",
		searchIndex.ResultsOptions.LimitResults, searchIndex.ResultsOptions.TeaserWordCount)
	for _, field := range index.Fields() {
		fmt.Fprintf(w, "field %s\t%d tokens\n", field, index.FieldIndex(field).Len())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if flagInspectField == "" {
		return nil
	}
	fieldIndex := index.FieldIndex(flagInspectField)
	if fieldIndex == nil {
		return fmt.Errorf("no such field %q, have %v", flagInspectField, index.Fields())
	}
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOKEN\tDF\tIDF")
	tokens := fieldIndex.Tokens()
	if flagInspectPrefix != "" {
		tokens = fieldIndex.ExpandToken(flagInspectPrefix)
	}
	for _, token := range tokens {
		fmt.Fprintf(w, "%s\t%d\t%.4f\n", token, fieldIndex.GetDocFreq(token), index.Idf(flagInspectField, token))
	}
	return w.Flush()
}
