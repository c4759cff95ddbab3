package translator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Input guards applied before a dashboard file reaches the engine.
const (
	// MaxFileSizeMB is the largest input file accepted, in megabytes
	MaxFileSizeMB = 50
	// MaxFileSize is MaxFileSizeMB in bytes
	MaxFileSize = MaxFileSizeMB << 20
	// MaxNestingDepth is the deepest JSON structure accepted
	MaxNestingDepth = 100
	// MaxPathLength is the longest file path accepted
	MaxPathLength = 4096
)

// LimitError reports input rejected by one of the safety limits.
type LimitError struct {
	Path   string
	Reason string
}

// Error implements the error interface
func (e *LimitError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", SanitizeForDisplay(e.Path), e.Reason)
}

// IsLimitError returns true if the error is a LimitError
func IsLimitError(err error) bool {
	var le *LimitError
	return errors.As(err, &le)
}

// ValidateInputPath checks a dashboard file path against the size, type
// and path-length limits before it is read.
func ValidateInputPath(path string) error {
	if len(path) > MaxPathLength {
		return &LimitError{Path: path, Reason: fmt.Sprintf("path exceeds %d characters", MaxPathLength)}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", SanitizeForDisplay(path), err)
	}
	if info.IsDir() {
		return &LimitError{Path: path, Reason: "path is a directory, not a file"}
	}
	if info.Size() == 0 {
		return &LimitError{Path: path, Reason: "file is empty"}
	}
	if info.Size() > MaxFileSize {
		return &LimitError{
			Path:   path,
			Reason: fmt.Sprintf("file is %.2fMB, limit is %dMB", float64(info.Size())/(1<<20), MaxFileSizeMB),
		}
	}

	return nil
}

// ValidateOutputPath checks the destination for converted output and
// returns the path to write, appending a .json suffix when none is given.
func ValidateOutputPath(path string) (string, error) {
	if len(path) > MaxPathLength {
		return "", &LimitError{Path: path, Reason: fmt.Sprintf("path exceeds %d characters", MaxPathLength)}
	}

	ext := filepath.Ext(path)
	switch ext {
	case "":
		path += ".json"
	case ".json":
	default:
		return "", &LimitError{Path: path, Reason: fmt.Sprintf("output must be a .json file, got %s", ext)}
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return "", &LimitError{Path: path, Reason: "parent directory does not exist"}
	}
	if !info.IsDir() {
		return "", &LimitError{Path: path, Reason: "parent path is not a directory"}
	}

	return path, nil
}

// CheckNestingDepth scans raw JSON and rejects structures nested deeper
// than max before any decoding happens.
func CheckNestingDepth(data []byte, max int) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
				if depth > max {
					return &LimitError{Reason: fmt.Sprintf("JSON nested deeper than %d levels", max)}
				}
			case '}', ']':
				depth--
			}
		}
	}
}

// SanitizeForDisplay strips control characters from a string and
// truncates it so untrusted input is safe to echo in errors and logs.
func SanitizeForDisplay(s string) string {
	const maxDisplay = 200

	var b strings.Builder
	for _, r := range s {
		if r >= 32 || r == '\n' || r == '\t' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > maxDisplay {
		out = out[:maxDisplay] + "..."
	}
	return out
}
