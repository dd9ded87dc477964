package reconcile

import (
	"twii-miner/core/graph"
	"twii-miner/core/labels"
	"twii-miner/core/override"
)

// Precedence says how a curated value meets an extracted one.
type Precedence string

const (
	// OverrideWins replaces the extracted value whenever the record carries the field.
	OverrideWins Precedence = "override_wins"
	// FillIfUnknown writes the curated value only while the extracted one is unknown.
	FillIfUnknown Precedence = "fill_if_unknown"
)

// Rule merges one field of a record onto a skill. Apply reports whether the
// skill changed.
type Rule struct {
	Field      string
	Precedence Precedence
	Apply      func(s *graph.Skill, r *override.Record) bool
}

// Rules is the complete merge table. Fields a record does not carry are never
// touched, and extracted fields missing from the table (name, desc, category,
// acquires, faction, minLevel) are never replaced.
var Rules = []Rule{
	{Field: "group", Precedence: FillIfUnknown, Apply: func(s *graph.Skill, r *override.Record) bool {
		if s.EffectiveGroup(graph.GroupUnknown) != graph.GroupUnknown || r.Group == graph.GroupUnknown {
			return false
		}
		s.Group = r.Group
		return true
	}},
	{Field: "map", Precedence: OverrideWins, Apply: func(s *graph.Skill, r *override.Record) bool {
		if !r.HasMap {
			return false
		}
		s.MapList = append([]graph.MapLoc(nil), r.Map...)
		return true
	}},
	{Field: "overlap", Precedence: OverrideWins, Apply: func(s *graph.Skill, r *override.Record) bool {
		if !r.HasOverlap {
			return false
		}
		s.OverlapIDs = append([]uint32(nil), r.Overlap...)
		return true
	}},
	{Field: "level", Precedence: OverrideWins, Apply: func(s *graph.Skill, r *override.Record) bool {
		return setString(&s.SortLevel, r.SortLevel)
	}},
	{Field: "tag", Precedence: OverrideWins, Apply: func(s *graph.Skill, r *override.Record) bool {
		return setString(&s.Tag, r.Tag)
	}},
	// minLevelInput only matters when game data carried no level; see EffectiveMinLevel.
	{Field: "minLevelInput", Precedence: OverrideWins, Apply: func(s *graph.Skill, r *override.Record) bool {
		if r.MinLevel == nil {
			return false
		}
		s.MinLevelInput = *r.MinLevel
		return true
	}},
	{Field: "store", Precedence: OverrideWins, Apply: func(s *graph.Skill, r *override.Record) bool {
		return setBool(&s.StoreLP, r.Store)
	}},
	{Field: "autoLevel", Precedence: OverrideWins, Apply: func(s *graph.Skill, r *override.Record) bool {
		return setBool(&s.AutoLevel, r.AutoLevel)
	}},
	{Field: "autoRep", Precedence: OverrideWins, Apply: func(s *graph.Skill, r *override.Record) bool {
		return setBool(&s.AutoRep, r.AutoRep)
	}},
	{Field: "label", Precedence: OverrideWins, Apply: func(s *graph.Skill, r *override.Record) bool {
		return mergeLabel(&s.Label, r.Label)
	}},
	{Field: "zone", Precedence: OverrideWins, Apply: func(s *graph.Skill, r *override.Record) bool {
		return mergeLabel(&s.Zone, r.Zone)
	}},
	{Field: "zoneLabel", Precedence: OverrideWins, Apply: func(s *graph.Skill, r *override.Record) bool {
		return mergeLabel(&s.ZoneLabel, r.ZoneLabel)
	}},
	{Field: "detail", Precedence: OverrideWins, Apply: func(s *graph.Skill, r *override.Record) bool {
		return mergeLabel(&s.Detail, r.Detail)
	}},
	{Field: "acquire", Precedence: OverrideWins, Apply: func(s *graph.Skill, r *override.Record) bool {
		return mergeLabel(&s.AcquireDesc, r.Acquire)
	}},
}

// Merge applies every rule of the table and returns the fields that changed.
func Merge(s *graph.Skill, r *override.Record) []string {
	var changed []string
	for _, rule := range Rules {
		if rule.Apply(s, r) {
			changed = append(changed, rule.Field)
		}
	}
	return changed
}

func setString(dst *string, v *string) bool {
	if v == nil {
		return false
	}
	*dst = *v
	return true
}

func setBool(dst *bool, v *bool) bool {
	if v == nil {
		return false
	}
	*dst = *v
	return true
}

// mergeLabel overwrites the locales the record carries and keeps the others.
func mergeLabel(dst *labels.Label, src labels.Label) bool {
	if src.Empty() {
		return false
	}
	if *dst == nil {
		*dst = labels.Label{}
	}
	for loc, v := range src {
		dst.Set(loc, v)
	}
	return true
}
