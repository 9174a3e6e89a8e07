package cmd

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ahmeddyounes/mediatrace/api"
)

var assetsFile string

var unusedCmd = &cobra.Command{
	Use:   "unused [asset-id]...",
	Short: "Report which of the given assets are never referenced",
	Long: `unused extracts the full referenced-id set and prints the candidate
asset ids that appear nowhere in it, across all registered adapters.

The command refuses to report when any scan pass was possibly
incomplete: a truncated reference set would mark live assets as unused,
and deleting on that basis destroys user data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		candidates, err := readAssetIDs(args, assetsFile)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			return fmt.Errorf("no candidate asset ids given (pass ids as arguments or via --assets)")
		}

		s, done, err := openScanner()
		if err != nil {
			return err
		}
		defer done()

		refs, prog, err := s.ExtractAllReferencedIDs(cmd.Context(), batchSize)
		if err != nil {
			return err
		}
		if prog.PossiblyIncomplete {
			return fmt.Errorf("scan hit the batch cap after %d rows; refusing to report unused assets from an incomplete reference set (raise --batch-cap and retry)", prog.RowsVisited)
		}

		unused := 0
		for _, id := range candidates {
			if int64(id) > math.MaxUint32 {
				fmt.Fprintf(os.Stderr, "skipping %d: id out of range, cannot verify\n", id)
				continue
			}
			if refs.Contains(uint32(id)) {
				continue
			}
			fmt.Println(id)
			unused++
		}
		fmt.Fprintf(os.Stderr, "%d of %d candidates are unreferenced\n", unused, len(candidates))
		return nil
	},
}

// readAssetIDs merges positional ids with an optional file of one id per
// line (blank lines and #-comments ignored).
func readAssetIDs(args []string, path string) ([]api.AssetID, error) {
	var out []api.AssetID
	for _, a := range args {
		id, err := parseAssetID(a)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if path == "" {
		return out, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open asset list: %w", err)
	}
	defer func() { _ = f.Close() }() // safe to ignore

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id, err := parseAssetID(line)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read asset list: %w", err)
	}
	return out, nil
}

func init() {
	unusedCmd.Flags().StringVar(&assetsFile, "assets", "", "file with one candidate asset id per line")
	rootCmd.AddCommand(unusedCmd)
}
