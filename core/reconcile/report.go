package reconcile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Log writes the report through l. Every entry the curator has to act on is a warning.
func (r *Report) Log(l *zap.Logger) {
	for _, e := range r.New {
		l.Warn("skill missing from override document",
			zap.String("id", e.ID), zap.String("name", e.Name), zap.String("group", e.Group))
	}
	for _, e := range r.Ambiguous {
		l.Warn("skill described more than once",
			zap.String("id", e.ID), zap.String("name", e.Name), zap.Int("line", e.Line))
	}
	for _, e := range r.Orphans {
		l.Warn("override record matches no skill",
			zap.String("id", e.ID), zap.String("group", e.Group), zap.Int("line", e.Line))
	}
	for _, e := range r.Unclassified {
		l.Warn("skill has no group",
			zap.String("id", e.ID), zap.String("name", e.Name), zap.String("default", e.Group))
	}
	l.Info("reconciliation finished",
		zap.Int("skills", r.Summary.Skills),
		zap.Int("records", r.Summary.Records),
		zap.Int("found", r.Summary.Found),
		zap.Int("new", r.Summary.New),
		zap.Int("multi_found", r.Summary.MultiFound),
		zap.Int("orphans", r.Summary.Orphans),
		zap.Int("unclassified", r.Summary.Unclassified),
	)
}

// Format is a report serialisation.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension. Anything but
// .yaml/.yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Encode writes the report to w.
func (r *Report) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	}
}

// WriteFile writes the report to path in the format its extension selects.
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()
	return r.Encode(f, FormatForPath(path))
}
