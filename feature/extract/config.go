package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"twii-miner/core/graph"
	"twii-miner/core/identity"
)

// Config holds configuration for the data sources of a run.
type Config struct {
	// Root is the data directory holding lore/ and lore/labels/.
	Root string `mapstructure:"root" default:"."`
	// Override is the path of the curated TOML document.
	Override string `mapstructure:"override" default:"skill_input.toml"`
	// OutputDir is where generated Lua files are written.
	OutputDir string `mapstructure:"output_dir" default:"."`
	// DefaultGroup is the read-time group of skills nothing else classified.
	DefaultGroup string `mapstructure:"default_group" default:"rep"`
	// Blacklist is a comma separated list of skill ids the skills stage ignores.
	Blacklist string `mapstructure:"blacklist" default:"1879064384,1879145101"`
}

// LoreDir returns the directory of the lore documents.
func (c Config) LoreDir() string {
	return filepath.Join(c.Root, "lore")
}

// LabelsDir returns the directory holding one label folder per locale.
func (c Config) LabelsDir() string {
	return filepath.Join(c.LoreDir(), "labels")
}

// Group parses DefaultGroup.
func (c Config) Group() (graph.Group, error) {
	g := graph.ParseGroup(c.DefaultGroup)
	if g == graph.GroupUnknown {
		return g, fmt.Errorf("invalid default group %q", c.DefaultGroup)
	}
	return g, nil
}

// BlacklistIDs parses Blacklist.
func (c Config) BlacklistIDs() (map[uint32]bool, error) {
	out := make(map[uint32]bool)
	for _, part := range strings.Split(c.Blacklist, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, ok := identity.ParseDecimal(part)
		if !ok {
			return nil, fmt.Errorf("invalid blacklist id %q", part)
		}
		out[id] = true
	}
	return out, nil
}
