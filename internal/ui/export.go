package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/thesavant42/phonefinder/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// pathSeparators are replaced in the number so the export name stays one path element
var pathSeparators = strings.NewReplacer("/", "_", `\`, "_", string(os.PathSeparator), "_")

// ExportFileName returns the export file name for a record: the queried number as typed,
// with path separators replaced by underscores
func ExportFileName(r models.PhoneRecord) string {
	return fmt.Sprintf("phone_lookup_%s.json", pathSeparators.Replace(r.PhoneNumber))
}

// MarshalRecord renders a record as 2-space indented JSON
func MarshalRecord(r models.PhoneRecord) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return data, nil
}

// ExportLookupJSON writes the record to dir and returns the written path
func ExportLookupJSON(r models.PhoneRecord, dir string) (string, error) {
	data, err := MarshalRecord(r)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}

	name := ExportFileName(r)
	if filepath.Base(name) != name {
		return "", fmt.Errorf("invalid export file name: %q", name)
	}
	path := filepath.Join(dir, name)
	if rel, err := filepath.Rel(dir, path); err != nil || rel != name {
		return "", fmt.Errorf("export file %q escapes export directory %s", name, dir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
