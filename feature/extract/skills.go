package extract

import (
	"twii-miner/core/graph"
	"twii-miner/core/labels"

	"go.uber.org/zap"
)

// skillsStage creates a skill for every travel skill, and for generic skills of
// the Creep and Hunter categories.
type skillsStage struct{}

func (skillsStage) Name() string { return "skills" }

func (skillsStage) Extract(st *State) (Stats, error) {
	var stats Stats
	root, err := st.document("skills.xml", "skills")
	if err != nil {
		return stats, err
	}

	add := func(id uint32, cat graph.Category, descKey string) {
		s, created := st.Graph.FindOrCreateSkill(id)
		if created {
			stats.Created++
		} else {
			stats.Enriched++
		}
		s.Category = cat
		if descKey != "" {
			s.DescKey = descKey
		}
	}

	for _, n := range root.Elements("travelSkill") {
		id, ok := decimalAttr(n, "identifier")
		if !ok {
			st.skip(&stats, n.Name, "identifier")
			continue
		}
		cat := graph.CategoryTravel
		if c, ok := decimalAttr(n, "category"); ok {
			cat = graph.Category(c)
		}
		desc, _ := n.Attr("description")
		add(id, cat, desc)
	}

	for _, n := range root.Elements("skill") {
		c, ok := decimalAttr(n, "category")
		if !ok {
			st.skip(&stats, n.Name, "category")
			continue
		}
		cat := graph.Category(c)
		if cat != graph.CategoryCreep && cat != graph.CategoryHunter {
			continue
		}
		id, ok := decimalAttr(n, "identifier")
		if !ok {
			st.skip(&stats, n.Name, "identifier")
			continue
		}
		if st.blacklist[id] {
			continue
		}
		desc, _ := n.Attr("description")
		add(id, cat, desc)
	}
	return stats, nil
}

// namesStage fills skill names in every locale, drops skills without a
// default-locale name and marks name collisions per locale.
type namesStage struct{}

func (namesStage) Name() string { return "names" }

func (namesStage) Extract(st *State) (Stats, error) {
	var stats Stats
	for _, loc := range labels.All {
		table, err := st.Labels.Load(labelsSkills, loc)
		if err != nil {
			return stats, err
		}
		for _, s := range st.Graph.Skills() {
			if v, ok := table[idKey(s.ID)]; ok && v != "" {
				s.Name.Set(loc, v)
			}
		}
	}

	for _, s := range st.Graph.Skills() {
		if s.Name[labels.Default] == "" {
			st.Graph.RemoveSkill(s.ID)
			stats.Skipped++
			st.logger.Debug("skill has no name", zap.String("id", graph.FormatID(s.ID)))
			continue
		}
		stats.Enriched++
	}

	for _, loc := range labels.All {
		markCollisions(st.Graph.Skills(), loc)
	}
	return stats, nil
}

// markCollisions flags every skill sharing its name in loc with another skill.
func markCollisions(skills []*graph.Skill, loc labels.Locale) {
	byName := make(map[string][]*graph.Skill)
	for _, s := range skills {
		if name := s.Name[loc]; name != "" {
			byName[name] = append(byName[name], s)
		}
	}
	for _, group := range byName {
		if len(group) < 2 {
			continue
		}
		for _, s := range group {
			if s.NameCollisions == nil {
				s.NameCollisions = make(map[labels.Locale]bool)
			}
			s.NameCollisions[loc] = true
		}
	}
}

// descriptionsStage fills descriptions of skills whose name collides.
type descriptionsStage struct{}

func (descriptionsStage) Name() string { return "descriptions" }

func (descriptionsStage) Extract(st *State) (Stats, error) {
	var stats Stats
	for _, loc := range labels.All {
		table, err := st.Labels.Load(labelsSkills, loc)
		if err != nil {
			return stats, err
		}
		for _, s := range st.Graph.Skills() {
			if !s.NeedsDesc() {
				continue
			}
			if s.DescKey == "" {
				if loc == labels.Default {
					st.skip(&stats, "skill", "description")
				}
				continue
			}
			v, ok := table[s.DescKey]
			if !ok || v == "" {
				continue
			}
			ensureLabel(&s.Desc).Set(loc, v)
			if loc == labels.Default {
				stats.Enriched++
			}
		}
	}
	return stats, nil
}
