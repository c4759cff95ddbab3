package cmd

import (
	"fmt"
	"os"

	"github.com/graang/graang/internal/runner"
	"github.com/graang/graang/internal/storage"
	"github.com/spf13/cobra"
)

var (
	batchOpts struct {
		outDir string
		jobs   int
		record bool
	}
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Convert every dashboard file in a directory",
	Long: `Convert all Datadog dashboard files (.json, .yaml, .yml) found in a
directory. Conversions run concurrently and each output is written next
to its source as <name>.grafana.json unless --out-dir is given.

Examples:
  # Convert everything in ./dashboards in place
  graang batch ./dashboards

  # Convert into a separate directory with 8 workers
  graang batch ./dashboards --out-dir ./converted --jobs 8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		jobs := appConfig.Jobs
		if cmd.Flags().Changed("jobs") {
			jobs = batchOpts.jobs
		}

		var store storage.ConversionStore
		if batchOpts.record {
			store = storage.NewBoltStore(&storage.BoltOptions{Path: appConfig.HistoryDB})
			if err := store.Open(); err != nil {
				return fmt.Errorf("failed to open history database: %w", err)
			}
			defer store.Close()
		}

		r := runner.NewBatchRunner(runner.Config{
			Jobs:    jobs,
			OutDir:  batchOpts.outDir,
			Options: appConfig.TranslatorOptions(),
		}, store)

		summary, err := r.Run(cmd.Context(), dir)
		if err != nil {
			return err
		}

		summary.Print(os.Stdout)

		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d dashboards failed to convert", summary.Failed, summary.Files)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchOpts.outDir, "out-dir", "", "directory for converted output (default is next to each source)")
	batchCmd.Flags().IntVar(&batchOpts.jobs, "jobs", runner.DefaultJobs, "number of concurrent conversions")
	batchCmd.Flags().BoolVar(&batchOpts.record, "record", false, "save conversions to the history database")
}
