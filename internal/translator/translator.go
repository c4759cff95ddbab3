package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/graang/graang/internal/model"
	"github.com/graang/graang/internal/utils/logger"
	"go.uber.org/zap"
)

// Conversion defaults applied when the caller leaves an option empty.
const (
	// DefaultDatasource is the datasource name and uid written into panels
	DefaultDatasource = "prometheus"
	// DefaultFolder is the folder label used for import payloads
	DefaultFolder = "Converted"
	// DefaultTimeFrom is the start of the default dashboard time window
	DefaultTimeFrom = "now-6h"
	// DefaultTimeTo is the end of the default dashboard time window
	DefaultTimeTo = "now"
)

// Options holds configuration for the conversion process
type Options struct {
	// Datasource is the name and uid of the datasource panels query
	Datasource string
	// Folder is the folder label carried by import payloads
	Folder string
	// TimeFrom is the start of the dashboard's default time window
	TimeFrom string
	// TimeTo is the end of the dashboard's default time window
	TimeTo string
	// Refresh is the dashboard refresh interval
	Refresh string
	// OutputPath is the path where converted output should be written
	OutputPath string
}

// DefaultOptions returns the conversion defaults
func DefaultOptions() Options {
	return Options{
		Datasource: DefaultDatasource,
		Folder:     DefaultFolder,
		TimeFrom:   DefaultTimeFrom,
		TimeTo:     DefaultTimeTo,
		Refresh:    model.DefaultRefresh,
	}
}

// withDefaults fills empty fields from the defaults.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Datasource == "" {
		o.Datasource = d.Datasource
	}
	if o.Folder == "" {
		o.Folder = d.Folder
	}
	if o.TimeFrom == "" {
		o.TimeFrom = d.TimeFrom
	}
	if o.TimeTo == "" {
		o.TimeTo = d.TimeTo
	}
	if o.Refresh == "" {
		o.Refresh = d.Refresh
	}
	return o
}

// Translator is the interface for dashboard conversion
type Translator interface {
	// Translate converts a parsed Datadog dashboard into a Grafana board
	Translate(ctx context.Context, d *model.Dashboard) (*model.Board, *Report, error)

	// TranslateFromReader reads a JSON dashboard from r and converts it
	TranslateFromReader(ctx context.Context, r io.Reader) (*model.Board, *Report, error)

	// TranslateFromFile converts a dashboard file, writing the result to
	// the configured output path when one is set
	TranslateFromFile(ctx context.Context, filePath string) (*model.Board, *Report, error)

	// ValidExtensions returns the input file extensions the translator accepts
	ValidExtensions() []string
}

// translatorImpl implements the Translator interface
type translatorImpl struct {
	options Options
	parsers map[string]Parser
}

// NewTranslator creates a new translator with the given options
func NewTranslator(opts Options) Translator {
	return &translatorImpl{
		options: opts.withDefaults(),
		parsers: map[string]Parser{
			".json": &JSONParser{},
			".yaml": &YAMLParser{},
			".yml":  &YAMLParser{},
		},
	}
}

// Translate converts a parsed Datadog dashboard into a Grafana board.
// The source dashboard is never modified.
func (t *translatorImpl) Translate(ctx context.Context, d *model.Dashboard) (*model.Board, *Report, error) {
	logger.Debug("Converting dashboard",
		zap.String("title", d.Title),
		zap.Int("widgets", len(d.Widgets)+len(d.Graphs)))

	src := *d
	src.Normalize()

	board, report, err := assemble(&src, t.options)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert dashboard: %w", err)
	}

	logger.Debug("Dashboard converted",
		zap.String("uid", board.UID),
		zap.Int("panels", len(board.Panels)),
		zap.Int("placeholders", report.Placeholders))

	return board, report, nil
}

// TranslateFromReader reads a JSON dashboard from r and converts it
func (t *translatorImpl) TranslateFromReader(ctx context.Context, r io.Reader) (*model.Board, *Report, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, nil, &LimitError{Reason: fmt.Sprintf("input exceeds %dMB", MaxFileSizeMB)}
	}

	d, err := t.parsers[".json"].Parse(data)
	if err != nil {
		return nil, nil, err
	}
	return t.Translate(ctx, d)
}

// TranslateFromFile converts a dashboard file, writing the result to the
// configured output path when one is set
func (t *translatorImpl) TranslateFromFile(ctx context.Context, filePath string) (*model.Board, *Report, error) {
	logger.Debug("Converting file", zap.String("file", filePath))

	ext := filepath.Ext(filePath)
	parser, ok := t.parsers[ext]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported file extension: %s", ext)
	}

	if err := ValidateInputPath(filePath); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	d, err := parser.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse file: %w", err)
	}

	board, report, err := t.Translate(ctx, d)
	if err != nil {
		return nil, nil, err
	}

	if t.options.OutputPath != "" {
		outputFile, err := ValidateOutputPath(t.options.OutputPath)
		if err != nil {
			return nil, nil, err
		}
		encoded, err := Encode(board)
		if err != nil {
			return nil, nil, err
		}
		if err := os.WriteFile(outputFile, encoded, 0644); err != nil {
			return nil, nil, fmt.Errorf("failed to write output to %s: %w", outputFile, err)
		}
		logger.Info("Converted dashboard written to file", zap.String("path", outputFile))
	}

	return board, report, nil
}

// ValidExtensions returns the input file extensions the translator accepts
func (t *translatorImpl) ValidExtensions() []string {
	exts := make([]string, 0, len(t.parsers))
	for ext := range t.parsers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Encode serializes a board the way Grafana's export does, two-space
// indented with a trailing newline.
func Encode(board *model.Board) ([]byte, error) {
	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize dashboard: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeImport serializes a board wrapped in the import envelope carrying
// the folder label.
func EncodeImport(board *model.Board, folder string) ([]byte, error) {
	payload := model.ImportPayload{
		Dashboard:   board,
		FolderTitle: folder,
		Overwrite:   false,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize import payload: %w", err)
	}
	return append(data, '\n'), nil
}
