package reconcile

import "twii-miner/core/graph"

// Options controls reconciliation.
type Options struct {
	// DefaultGroup is the read-time group of skills nothing else classified.
	// Skills that would fall back to it are listed as unclassified.
	DefaultGroup graph.Group
}

// Entry is one line of the reconciliation report.
type Entry struct {
	// ID is the skill id as spelled in the override document.
	ID string `json:"id" yaml:"id"`

	// Name is the default-locale skill name, empty for orphans.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Group is the group the skill is listed under.
	Group string `json:"group,omitempty" yaml:"group,omitempty"`

	// Line is the line of the override record the entry refers to.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
}

// Report is the outcome of one reconciliation. Every section is ordered by id,
// then by line.
type Report struct {
	// New lists extracted skills without any override record.
	New []Entry `json:"new" yaml:"new"`

	// Ambiguous lists every override record of a skill described more than once.
	Ambiguous []Entry `json:"ambiguous" yaml:"ambiguous"`

	// Orphans lists override records whose id matches no extracted skill.
	Orphans []Entry `json:"orphans" yaml:"orphans"`

	// Unclassified lists skills whose group is only known through the default.
	Unclassified []Entry `json:"unclassified" yaml:"unclassified"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary" yaml:"summary"`
}

// Summary provides aggregate statistics for a reconciliation.
type Summary struct {
	// Skills is the number of extracted skills.
	Skills int `json:"skills" yaml:"skills"`

	// Records is the number of override records.
	Records int `json:"records" yaml:"records"`

	// Found counts skills matched by exactly one record.
	Found int `json:"found" yaml:"found"`

	// New counts skills without a record.
	New int `json:"new" yaml:"new"`

	// MultiFound counts skills matched by two or more records.
	MultiFound int `json:"multi_found" yaml:"multi_found"`

	// Orphans counts records without a skill.
	Orphans int `json:"orphans" yaml:"orphans"`

	// Unclassified counts skills that rely on the default group.
	Unclassified int `json:"unclassified" yaml:"unclassified"`
}

// Clean reports whether the curator has nothing to act on.
func (r *Report) Clean() bool {
	return len(r.New) == 0 && len(r.Ambiguous) == 0 && len(r.Orphans) == 0 && len(r.Unclassified) == 0
}
