package cmd

import (
	"fmt"
	"time"

	"github.com/graang/graang/internal/storage"
	"github.com/spf13/cobra"
)

var (
	historyOpts struct {
		db         string
		limit      int
		deleteFlag bool
	}
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show recorded conversions",
	Long: `Show conversions recorded with --record, newest first.

With an id argument the full record is printed. With --delete the
record is removed instead.

Examples:
  # List the last 10 conversions
  graang history --limit 10

  # Show one conversion in full
  graang history 1b4e28ba-2fa1-11d2-883f-0016d3cca427

  # Remove a record
  graang history --delete 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appConfig.HistoryDB
		if cmd.Flags().Changed("db") {
			path = historyOpts.db
		}

		store := storage.NewBoltStore(&storage.BoltOptions{Path: path})
		if err := store.Open(); err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer store.Close()

		ctx := cmd.Context()

		if len(args) == 1 {
			id := args[0]

			if historyOpts.deleteFlag {
				if err := store.DeleteRecord(ctx, id); err != nil {
					return fmt.Errorf("failed to delete record: %w", err)
				}
				fmt.Printf("Deleted conversion %s\n", id)
				return nil
			}

			record, err := store.GetRecord(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get record: %w", err)
			}
			printRecord(record)
			return nil
		}

		if historyOpts.deleteFlag {
			return fmt.Errorf("--delete requires a conversion id")
		}

		records, err := store.ListRecords(ctx, historyOpts.limit)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No conversions recorded yet. Run convert with --record.")
			return nil
		}

		fmt.Printf("Recorded Conversions (%d):\n", len(records))
		fmt.Println("========================")
		for _, record := range records {
			printRecord(record)
			fmt.Println("------------------------")
		}

		return nil
	},
}

func printRecord(record *storage.ConversionRecord) {
	fmt.Printf("ID: %s\n", record.ID)
	fmt.Printf("Title: %s\n", record.Title)
	fmt.Printf("UID: %s\n", record.UID)
	fmt.Printf("Source: %s\n", record.SourceFile)
	if record.OutputFile != "" {
		fmt.Printf("Output: %s\n", record.OutputFile)
	}
	fmt.Printf("Widgets: %d (%d converted, %d placeholders)\n",
		record.Widgets, record.Converted, record.Placeholders)
	fmt.Printf("Converted At: %s\n", record.ConvertedAt.Format(time.RFC3339))
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyOpts.db, "db", "", "history database path (default from config)")
	historyCmd.Flags().IntVar(&historyOpts.limit, "limit", 0, "maximum records to list, 0 for all")
	historyCmd.Flags().BoolVar(&historyOpts.deleteFlag, "delete", false, "delete the given record instead of showing it")
}
