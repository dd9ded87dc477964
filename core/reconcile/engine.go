package reconcile

import (
	"errors"
	"sort"

	"twii-miner/core/graph"
	"twii-miner/core/labels"
	"twii-miner/core/override"
)

// ErrNoDocument is returned when reconciliation is asked to run without an override document.
var ErrNoDocument = errors.New("no override document")

// Reconcile merges doc onto the skills of g and computes every skill's status.
//
// A skill matched by exactly one record is Found and receives that record's
// fields. A skill matched by two or more records is MultiFound and receives
// nothing: picking one would hide the authoring error. Skills without a record
// are NotFound, and records without a skill are orphans.
func Reconcile(g *graph.Graph, doc *override.Document, opts Options) (*Report, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}

	report := &Report{
		New:          []Entry{},
		Ambiguous:    []Entry{},
		Orphans:      []Entry{},
		Unclassified: []Entry{},
	}
	byID := doc.ByID()

	for _, s := range g.Skills() {
		idx := byID[s.ID]
		switch len(idx) {
		case 0:
			s.Status = graph.StatusNotFound
		case 1:
			s.Status = graph.StatusFound
			Merge(s, &doc.Records[idx[0]])
		default:
			s.Status = graph.StatusMultiFound
			for _, i := range idx {
				r := doc.Records[i]
				report.Ambiguous = append(report.Ambiguous, Entry{
					ID:    graph.FormatID(s.ID),
					Name:  s.Name.Resolve(labels.Default),
					Group: r.Group.String(),
					Line:  r.Line,
				})
			}
		}
	}

	// Groups are read after merging so curated groups count as classified.
	for _, s := range g.Skills() {
		entry := Entry{
			ID:    graph.FormatID(s.ID),
			Name:  s.Name.Resolve(labels.Default),
			Group: s.EffectiveGroup(opts.DefaultGroup).String(),
		}
		switch s.Status {
		case graph.StatusNotFound:
			report.New = append(report.New, entry)
			report.Summary.New++
		case graph.StatusFound:
			report.Summary.Found++
		case graph.StatusMultiFound:
			report.Summary.MultiFound++
		}
		if isUnclassified(s) {
			report.Unclassified = append(report.Unclassified, entry)
		}
	}

	for _, r := range doc.Records {
		if _, ok := g.Skill(r.ID); ok {
			continue
		}
		report.Orphans = append(report.Orphans, Entry{
			ID:    graph.FormatID(r.ID),
			Group: r.Group.String(),
			Line:  r.Line,
		})
	}
	sort.SliceStable(report.Orphans, func(i, j int) bool {
		if report.Orphans[i].ID != report.Orphans[j].ID {
			return report.Orphans[i].ID < report.Orphans[j].ID
		}
		return report.Orphans[i].Line < report.Orphans[j].Line
	})

	for group, tag := range doc.LabelTags {
		g.LabelTags[group] = tag.Clone()
	}

	report.Summary.Skills = g.SkillCount()
	report.Summary.Records = len(doc.Records)
	report.Summary.Orphans = len(report.Orphans)
	report.Summary.Unclassified = len(report.Unclassified)
	return report, nil
}

// isUnclassified reports whether only the configured default would give s a group.
func isUnclassified(s *graph.Skill) bool {
	if s.Group != graph.GroupUnknown {
		return false
	}
	return s.Category != graph.CategoryCreep && s.Category != graph.CategoryHunter
}
