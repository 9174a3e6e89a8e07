// Package cmd implements the mediatrace command line: reference checks,
// usage reports, and full-corpus reference extraction over a content
// database.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ahmeddyounes/mediatrace/api"
	"github.com/ahmeddyounes/mediatrace/internal/adapter"
	"github.com/ahmeddyounes/mediatrace/internal/rules"
	"github.com/ahmeddyounes/mediatrace/internal/scan"
	"github.com/ahmeddyounes/mediatrace/internal/store"
)

var (
	dbPath    string
	batchSize int
	batchCap  int
	rulesPath string
)

var rootCmd = &cobra.Command{
	Use:   "mediatrace",
	Short: "Resolve media-asset references in page-builder content",
	Long: `mediatrace decides whether media assets are still referenced by any
content item, including references buried in page-builder JSON and
legacy-serialized blobs. It is the verification step behind any
"delete unused media" action: a wrong answer either destroys data or
defeats cleanup entirely.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the content database (required)")
	rootCmd.PersistentFlags().IntVar(&batchSize, "batch-size", scan.DefaultBatchSize, "rows per store fetch")
	rootCmd.PersistentFlags().IntVar(&batchCap, "batch-cap", scan.DefaultBatchCap, "safety cap on pages per scan pass")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "HCL rule file declaring extra builder adapters")
	_ = rootCmd.MarkPersistentFlagRequired("db")
}

// openScanner opens the store and registers the builtin adapter plus any
// adapters declared in the --rules file. The returned func releases the
// store.
func openScanner() (*scan.Scanner, func(), error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	s := scan.New(st, scan.WithBatchSize(batchSize), scan.WithBatchCap(batchCap))
	s.Register(adapter.NewElementor(st))
	if rulesPath != "" {
		f, err := rules.LoadFile(rulesPath)
		if err != nil {
			_ = st.Close()
			return nil, nil, err
		}
		for _, cfg := range f.Adapters {
			s.Register(adapter.NewCustom(st, cfg))
		}
	}
	return s, func() { _ = st.Close() }, nil
}

func parseAssetID(arg string) (api.AssetID, error) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid asset id %q: expected a positive integer", arg)
	}
	return api.AssetID(n), nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errNotReferenced) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
