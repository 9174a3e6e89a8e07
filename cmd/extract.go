package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract every referenced asset id from the corpus",
	Long: `extract makes a full pass over every blob of the registered kinds and
prints the union of all referenced asset ids, one per line. When the
batch cap stops the pass early the result is a subset of the true
references and a warning is emitted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, done, err := openScanner()
		if err != nil {
			return err
		}
		defer done()

		refs, prog, err := s.ExtractAllReferencedIDs(cmd.Context(), batchSize)
		if err != nil {
			return err
		}
		it := refs.Iterator()
		for it.HasNext() {
			fmt.Println(it.Next())
		}
		fmt.Fprintf(os.Stderr, "%d referenced assets across %d rows\n", refs.GetCardinality(), prog.RowsVisited)
		if prog.PossiblyIncomplete {
			fmt.Fprintln(os.Stderr, "warning: scan hit the batch cap; the set is a subset, not a complete account")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
