package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var usageLimit int

var usagesCmd = &cobra.Command{
	Use:   "usages <asset-id>",
	Short: "List where an asset is referenced",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAssetID(args[0])
		if err != nil {
			return err
		}
		s, done, err := openScanner()
		if err != nil {
			return err
		}
		defer done()

		usages, prog, err := s.LocateUsages(cmd.Context(), id, usageLimit)
		if err != nil {
			return err
		}
		for _, u := range usages {
			fmt.Printf("content %d %q: %s\n", u.ContentID, u.ContentTitle, u.Context)
		}
		if len(usages) == 0 {
			fmt.Printf("no usages found for asset %d\n", id)
		}
		if prog.PossiblyIncomplete {
			fmt.Fprintln(os.Stderr, "warning: scan hit the batch cap; the list may be incomplete")
		}
		return nil
	},
}

func init() {
	usagesCmd.Flags().IntVar(&usageLimit, "limit", 0, "maximum usage records to report (0 = default)")
	rootCmd.AddCommand(usagesCmd)
}
