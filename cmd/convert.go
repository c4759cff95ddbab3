package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/graang/graang/internal/storage"
	"github.com/graang/graang/internal/translator"
	"github.com/graang/graang/internal/utils/logger"
	"github.com/graang/graang/internal/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	convertOpts struct {
		inputFile  string
		outputFile string
		datasource string
		folder     string
		timeFrom   string
		timeTo     string
		envelope   bool
		record     bool
		watch      bool
	}
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert -f <file>",
	Short: "Convert a Datadog dashboard to a Grafana dashboard",
	Long: `Convert a Datadog dashboard export (JSON or YAML) into a Grafana
dashboard definition.

The Grafana JSON is written to stdout unless --to-file is given. The
conversion report goes to stderr so the JSON stays pipeable.

Examples:
  # Convert and print to stdout
  graang convert -f dashboard.json

  # Convert to a file, wrapped in an import payload for the Grafana API
  graang convert -f dashboard.json --to-file out.json --envelope

  # Reconvert whenever the source file changes
  graang convert -f dashboard.json --to-file out.json --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if convertOpts.inputFile == "" {
			logger.Error("Missing input file", zap.String("command", "convert"))
			return fmt.Errorf("input file is required. Use -f to specify a file")
		}

		if convertOpts.watch && convertOpts.outputFile == "" {
			return fmt.Errorf("--watch requires --to-file so reconversions have somewhere to go")
		}

		opts := appConfig.TranslatorOptions()
		if cmd.Flags().Changed("datasource") {
			opts.Datasource = convertOpts.datasource
		}
		if cmd.Flags().Changed("folder") {
			opts.Folder = convertOpts.folder
		}
		if cmd.Flags().Changed("time-from") {
			opts.TimeFrom = convertOpts.timeFrom
		}
		if cmd.Flags().Changed("time-to") {
			opts.TimeTo = convertOpts.timeTo
		}

		t := translator.NewTranslator(opts)

		var store storage.ConversionStore
		if convertOpts.record {
			store = storage.NewBoltStore(&storage.BoltOptions{Path: appConfig.HistoryDB})
			if err := store.Open(); err != nil {
				return fmt.Errorf("failed to open history database: %w", err)
			}
			defer store.Close()
		}

		convert := func(path string) error {
			return runConversion(cmd.Context(), t, store, path, opts.Folder)
		}

		if err := convert(convertOpts.inputFile); err != nil {
			logger.Error("Conversion failed", zap.Error(err))
			return err
		}

		if convertOpts.watch {
			w, err := watcher.NewWatcher(convert)
			if err != nil {
				return fmt.Errorf("failed to create file watcher: %w", err)
			}
			defer w.Close()

			if err := w.WatchFile(convertOpts.inputFile); err != nil {
				return fmt.Errorf("failed to watch %s: %w", convertOpts.inputFile, err)
			}

			fmt.Fprintf(os.Stderr, "Watching %s for changes. Press Ctrl+C to stop.\n", convertOpts.inputFile)

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan
			fmt.Fprintln(os.Stderr, "\nStopping watcher...")
		}

		return nil
	},
}

// runConversion converts one file and writes the result to the output
// file or stdout.
func runConversion(ctx context.Context, t translator.Translator, store storage.ConversionStore, path string, folder string) error {
	board, report, err := t.TranslateFromFile(ctx, path)
	if err != nil {
		return err
	}

	var encoded []byte
	if convertOpts.envelope {
		encoded, err = translator.EncodeImport(board, folder)
	} else {
		encoded, err = translator.Encode(board)
	}
	if err != nil {
		return err
	}

	if convertOpts.outputFile != "" {
		outputFile, err := translator.ValidateOutputPath(convertOpts.outputFile)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outputFile, encoded, 0644); err != nil {
			return fmt.Errorf("failed to write output to %s: %w", outputFile, err)
		}
		logger.Info("Converted dashboard written to file", zap.String("path", outputFile))
	} else {
		os.Stdout.Write(encoded)
	}

	// The report goes to stderr so stdout stays clean JSON
	fmt.Fprintln(os.Stderr, report.Format())

	if store != nil {
		record := &storage.ConversionRecord{
			SourceFile:   path,
			OutputFile:   convertOpts.outputFile,
			Title:        board.Title,
			UID:          board.UID,
			Widgets:      report.Total,
			Converted:    report.Converted,
			Placeholders: report.Placeholders,
		}
		if err := store.SaveRecord(ctx, record); err != nil {
			logger.Warn("Failed to record conversion", zap.Error(err))
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertOpts.inputFile, "file", "f", "", "input Datadog dashboard file (.json, .yaml or .yml)")
	convertCmd.Flags().StringVar(&convertOpts.outputFile, "to-file", "", "write output to file instead of stdout")
	convertCmd.Flags().StringVar(&convertOpts.datasource, "datasource", "", "datasource name and uid set on every panel")
	convertCmd.Flags().StringVar(&convertOpts.folder, "folder", "", "folder title used with --envelope")
	convertCmd.Flags().StringVar(&convertOpts.timeFrom, "time-from", "", "dashboard time range start")
	convertCmd.Flags().StringVar(&convertOpts.timeTo, "time-to", "", "dashboard time range end")
	convertCmd.Flags().BoolVar(&convertOpts.envelope, "envelope", false, "wrap output in a Grafana import payload")
	convertCmd.Flags().BoolVar(&convertOpts.record, "record", false, "save the conversion to the history database")
	convertCmd.Flags().BoolVar(&convertOpts.watch, "watch", false, "reconvert whenever the input file changes")
}
