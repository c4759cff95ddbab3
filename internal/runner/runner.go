package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/graang/graang/internal/storage"
	"github.com/graang/graang/internal/translator"
	"github.com/graang/graang/internal/utils/logger"
	"go.uber.org/zap"
)

// DefaultJobs is the number of concurrent conversions when none is configured
const DefaultJobs = 4

// convertedSuffix marks batch output files so they are never picked up as
// inputs on a rerun over the same directory.
const convertedSuffix = ".grafana.json"

// Config holds configuration for the batch runner
type Config struct {
	// Jobs is the number of concurrent conversions
	Jobs int
	// OutDir is where converted dashboards are written. Empty writes next
	// to the sources.
	OutDir string
	// Options are passed to each conversion
	Options translator.Options
}

// Result holds the outcome of converting one file
type Result struct {
	File       string
	OutputFile string
	Report     *translator.Report
	Err        error
}

// Summary aggregates the results of a batch run
type Summary struct {
	Dir       string
	Results   []Result
	Files     int
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// BatchRunner converts every dashboard file in a directory
type BatchRunner struct {
	config Config
	store  storage.ConversionStore
}

// NewBatchRunner creates a new batch runner. store may be nil when no
// history should be recorded.
func NewBatchRunner(config Config, store storage.ConversionStore) *BatchRunner {
	if config.Jobs <= 0 {
		config.Jobs = DefaultJobs
	}
	return &BatchRunner{
		config: config,
		store:  store,
	}
}

// Run converts all dashboard files found in dir
func (r *BatchRunner) Run(ctx context.Context, dir string) (*Summary, error) {
	files, err := discoverFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no dashboard files found in %s", dir)
	}

	logger.Info("Starting batch conversion",
		zap.String("dir", dir),
		zap.Int("files", len(files)),
		zap.Int("jobs", r.config.Jobs))

	start := time.Now()

	jobs := make(chan string)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < r.config.Jobs; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			wlog := logger.With(zap.Int("worker", worker))
			for path := range jobs {
				if wlog != nil {
					wlog.Debug("Converting file", zap.String("file", path))
				}
				results <- r.convertOne(ctx, path)
			}
		}(i)
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			select {
			case jobs <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	summary := &Summary{Dir: dir, Files: len(files)}
	for res := range results {
		if res.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		summary.Results = append(summary.Results, res)
	}
	summary.Duration = time.Since(start)

	// Channel collection order is nondeterministic
	sort.Slice(summary.Results, func(i, j int) bool {
		return summary.Results[i].File < summary.Results[j].File
	})

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// convertOne converts a single file and records it in the history store
func (r *BatchRunner) convertOne(ctx context.Context, path string) Result {
	if err := ctx.Err(); err != nil {
		return Result{File: path, Err: err}
	}

	opts := r.config.Options
	opts.OutputPath = r.outputPathFor(path)

	tr := translator.NewTranslator(opts)
	board, report, err := tr.TranslateFromFile(ctx, path)
	if err != nil {
		logger.Error("Batch conversion failed", zap.String("file", path), zap.Error(err))
		return Result{File: path, Err: err}
	}

	if r.store != nil {
		record := &storage.ConversionRecord{
			SourceFile:   path,
			OutputFile:   opts.OutputPath,
			Title:        board.Title,
			UID:          board.UID,
			Widgets:      report.Total,
			Converted:    report.Converted,
			Placeholders: report.Placeholders,
		}
		if err := r.store.SaveRecord(ctx, record); err != nil {
			logger.Warn("Failed to record conversion", zap.String("file", path), zap.Error(err))
		}
	}

	return Result{File: path, OutputFile: opts.OutputPath, Report: report}
}

// outputPathFor derives the destination for a converted file
func (r *BatchRunner) outputPathFor(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + convertedSuffix

	if r.config.OutDir == "" {
		return filepath.Join(filepath.Dir(path), name)
	}
	return filepath.Join(r.config.OutDir, name)
}

// discoverFiles lists the dashboard files directly inside dir
func discoverFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, convertedSuffix) {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, name))
		}
	}

	sort.Strings(files)
	return files, nil
}

// Print writes a colored batch summary
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "🚀 Batch conversion: %s\n\n", s.Dir)

	okColor := color.New(color.FgGreen)
	failColor := color.New(color.FgRed)

	for _, res := range s.Results {
		if res.Err != nil {
			failColor.Fprintf(w, "✗ %s: %v\n", filepath.Base(res.File), res.Err)
			continue
		}
		okColor.Fprintf(w, "✓ %s -> %s", filepath.Base(res.File), res.OutputFile)
		fmt.Fprintf(w, " (%d widget(s), %d converted, %d placeholder(s))\n",
			res.Report.Total, res.Report.Converted, res.Report.Placeholders)
	}

	summaryColor := color.New(color.FgYellow, color.Bold)
	fmt.Fprintln(w)
	summaryColor.Fprintf(w, "📊 Summary: %d/%d dashboards converted in %s\n",
		s.Succeeded, s.Files, s.Duration.Round(time.Millisecond))
}
