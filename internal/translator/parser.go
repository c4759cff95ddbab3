package translator

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/graang/graang/internal/model"
	"github.com/graang/graang/internal/utils/logger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Parser is the interface for parsing dashboard documents
type Parser interface {
	// Parse parses input data into a dashboard structure
	Parse(data []byte) (*model.Dashboard, error)

	// ParseReader parses from an io.Reader
	ParseReader(r io.Reader) (*model.Dashboard, error)
}

// JSONParser implements Parser for Datadog JSON exports
type JSONParser struct{}

// Parse parses JSON input data into a dashboard structure
func (p *JSONParser) Parse(data []byte) (*model.Dashboard, error) {
	logger.Debug("Parsing JSON dashboard")

	if err := CheckNestingDepth(data, MaxNestingDepth); err != nil {
		return nil, err
	}

	var d model.Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		logger.Error("Failed to parse JSON", zap.Error(err))
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	d.Normalize()
	return &d, nil
}

// ParseReader parses JSON from an io.Reader
func (p *JSONParser) ParseReader(r io.Reader) (*model.Dashboard, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return p.Parse(data)
}

// YAMLParser implements Parser for dashboards kept as YAML, the common
// form for dashboards checked into config repositories
type YAMLParser struct{}

// Parse parses YAML input data into a dashboard structure
func (p *YAMLParser) Parse(data []byte) (*model.Dashboard, error) {
	logger.Debug("Parsing YAML dashboard")

	var d model.Dashboard
	if err := yaml.Unmarshal(data, &d); err != nil {
		logger.Error("Failed to parse YAML", zap.Error(err))
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	d.Normalize()
	return &d, nil
}

// ParseReader parses YAML from an io.Reader
func (p *YAMLParser) ParseReader(r io.Reader) (*model.Dashboard, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return p.Parse(data)
}

// ParseFile reads and parses a dashboard file, choosing the parser by
// file extension
func ParseFile(path string) (*model.Dashboard, error) {
	if err := ValidateInputPath(path); err != nil {
		return nil, err
	}

	var parser Parser
	switch filepath.Ext(path) {
	case ".json":
		parser = &JSONParser{}
	case ".yaml", ".yml":
		parser = &YAMLParser{}
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return parser.Parse(data)
}
