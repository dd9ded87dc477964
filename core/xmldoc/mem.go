package xmldoc

import (
	"fmt"
	"os"
	"path/filepath"
)

// MemReader serves documents from memory, keyed by cleaned path.
// Tests and tooling use it to run extractors without touching disk.
type MemReader map[string]string

// Load implements Reader.
func (m MemReader) Load(path string) (*Document, error) {
	data, ok := m[filepath.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("failed to read document: open %s: %w", path, os.ErrNotExist)
	}
	root, err := Parse([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &Document{Path: path, Root: root}, nil
}
