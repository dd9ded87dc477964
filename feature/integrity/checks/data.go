package checks

import (
	"errors"
	"os"
	"path/filepath"

	"twii-miner/core/labels"
	"twii-miner/core/xmldoc"
	"twii-miner/feature/extract"

	"go.uber.org/zap"
)

// Problem is one document that cannot be used.
type Problem struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// DataReport is the result of a data root check.
type DataReport struct {
	Root    string    `json:"root"`
	Checked int       `json:"checked"`
	Missing []string  `json:"missing"`
	Invalid []Problem `json:"invalid"`
}

// OK reports whether every document is present and well formed.
func (r *DataReport) OK() bool {
	return len(r.Missing) == 0 && len(r.Invalid) == 0
}

// RequiredDirs returns the directories a data root must contain.
func RequiredDirs(cfg extract.Config) []string {
	dirs := []string{cfg.LoreDir(), cfg.LabelsDir()}
	for _, loc := range labels.All {
		dirs = append(dirs, filepath.Join(cfg.LabelsDir(), string(loc)))
	}
	return dirs
}

// CheckDataRoot loads every lore and label document a run needs and reports
// the ones that are missing, lack their root element or declare the wrong
// locale.
func CheckDataRoot(reader xmldoc.Reader, cfg extract.Config) *DataReport {
	report := &DataReport{Root: cfg.Root, Missing: []string{}, Invalid: []Problem{}}

	record := func(path string, err error) {
		report.Checked++
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist):
			report.Missing = append(report.Missing, path)
		default:
			report.Invalid = append(report.Invalid, Problem{Path: path, Error: err.Error()})
		}
	}

	for _, d := range extract.LoreDocuments {
		path := filepath.Join(cfg.LoreDir(), d.File)
		doc, err := reader.Load(path)
		if err == nil {
			_, err = doc.RootElement(d.Root)
		}
		record(path, err)
	}

	store := labels.NewStore(reader, cfg.LabelsDir())
	for _, name := range extract.LabelDocuments {
		for _, loc := range labels.All {
			_, err := store.Load(name, loc)
			record(store.Path(name, loc), err)
		}
	}
	return report
}

// FixDataRoot creates the missing directories of a data root. Documents are
// never created.
func FixDataRoot(cfg extract.Config, logger *zap.Logger) ([]string, error) {
	var created []string
	for _, dir := range RequiredDirs(cfg) {
		if _, err := os.Stat(dir); err == nil {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("failed to create directory", zap.String("dir", dir), zap.Error(err))
			return created, err
		}
		logger.Info("created missing directory", zap.String("dir", dir))
		created = append(created, dir)
	}
	return created, nil
}
