package translator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateInputPathAcceptsRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dash.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if err := ValidateInputPath(path); err != nil {
		t.Errorf("Expected valid path, got %v", err)
	}
}

func TestValidateInputPathRejectsMissingFile(t *testing.T) {
	err := ValidateInputPath(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestValidateInputPathRejectsDirectory(t *testing.T) {
	err := ValidateInputPath(t.TempDir())
	if err == nil {
		t.Fatal("Expected error for directory")
	}
	if !IsLimitError(err) {
		t.Errorf("Expected LimitError, got %v", err)
	}
}

func TestValidateInputPathRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	err := ValidateInputPath(path)
	if err == nil {
		t.Fatal("Expected error for empty file")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("Expected empty file error, got %v", err)
	}
}

func TestValidateInputPathRejectsLongPath(t *testing.T) {
	err := ValidateInputPath(strings.Repeat("a", MaxPathLength+1))
	if err == nil {
		t.Fatal("Expected error for oversized path")
	}
	if !IsLimitError(err) {
		t.Errorf("Expected LimitError, got %v", err)
	}
}

func TestValidateOutputPathAppendsExtension(t *testing.T) {
	dir := t.TempDir()
	got, err := ValidateOutputPath(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("Expected valid output path, got %v", err)
	}
	if !strings.HasSuffix(got, "out.json") {
		t.Errorf("Expected .json suffix appended, got %q", got)
	}
}

func TestValidateOutputPathKeepsJSONExtension(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "out.json")
	got, err := ValidateOutputPath(want)
	if err != nil {
		t.Fatalf("Expected valid output path, got %v", err)
	}
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestValidateOutputPathRejectsOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	_, err := ValidateOutputPath(filepath.Join(dir, "out.yaml"))
	if err == nil {
		t.Fatal("Expected error for non-json output")
	}
	if !IsLimitError(err) {
		t.Errorf("Expected LimitError, got %v", err)
	}
}

func TestValidateOutputPathRejectsMissingParent(t *testing.T) {
	_, err := ValidateOutputPath(filepath.Join(t.TempDir(), "missing", "out.json"))
	if err == nil {
		t.Fatal("Expected error for missing parent directory")
	}
}

func TestCheckNestingDepth(t *testing.T) {
	if err := CheckNestingDepth([]byte(`{"a": [{"b": 1}]}`), MaxNestingDepth); err != nil {
		t.Errorf("Expected shallow JSON to pass, got %v", err)
	}

	deep := strings.Repeat(`{"a":`, MaxNestingDepth+1) + "1" + strings.Repeat("}", MaxNestingDepth+1)
	err := CheckNestingDepth([]byte(deep), MaxNestingDepth)
	if err == nil {
		t.Fatal("Expected error for deep JSON")
	}
	if !IsLimitError(err) {
		t.Errorf("Expected LimitError, got %v", err)
	}
}

func TestSanitizeForDisplay(t *testing.T) {
	if got := SanitizeForDisplay("plain path.json"); got != "plain path.json" {
		t.Errorf("Expected unchanged string, got %q", got)
	}

	if got := SanitizeForDisplay("bad\x1b[31mname\x00.json"); got != "bad[31mname.json" {
		t.Errorf("Expected control characters stripped, got %q", got)
	}

	if got := SanitizeForDisplay("keep\nnewline\tand tab"); got != "keep\nnewline\tand tab" {
		t.Errorf("Expected newline and tab kept, got %q", got)
	}

	long := strings.Repeat("x", 300)
	got := SanitizeForDisplay(long)
	if len(got) != 203 {
		t.Errorf("Expected truncation to 200 plus ellipsis, got length %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected ellipsis suffix, got %q", got[len(got)-10:])
	}
}

func TestLimitErrorFormatsPath(t *testing.T) {
	err := &LimitError{Path: "dash.json", Reason: "file is empty"}
	if err.Error() != "dash.json: file is empty" {
		t.Errorf("Unexpected message: %q", err.Error())
	}

	bare := &LimitError{Reason: "JSON nested deeper than 100 levels"}
	if bare.Error() != "JSON nested deeper than 100 levels" {
		t.Errorf("Unexpected message: %q", bare.Error())
	}
}
