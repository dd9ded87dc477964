package extract

import (
	"twii-miner/core/graph"
	"twii-miner/core/identity"
	"twii-miner/core/xmldoc"

	"go.uber.org/zap"
)

// itemsStage creates an Acquire for every item granting a known skill and copies
// the item's class, reputation and level requirements onto the skill.
type itemsStage struct{}

func (itemsStage) Name() string { return "items" }

func (itemsStage) Extract(st *State) (Stats, error) {
	var stats Stats
	root, err := st.document("items.xml", "items")
	if err != nil {
		return stats, err
	}

	for _, n := range root.Elements("item") {
		grants := n.Elements("grants")
		if len(grants) == 0 {
			continue
		}
		itemID, ok := decimalAttr(n, "key")
		if !ok {
			st.skip(&stats, n.Name, "key")
			continue
		}
		for _, g := range grants {
			s, ok := st.knownSkill(g, "id")
			if !ok {
				continue
			}
			a, created := s.AcquireByItem(itemID)
			if created {
				stats.Created++
			} else {
				stats.Enriched++
			}
			st.Resolver.AddItemGrant(itemID, s.ID)
			applyItem(st, s, a, n)
		}
	}
	return stats, nil
}

func applyItem(st *State, s *graph.Skill, a *graph.Acquire, n *xmldoc.Node) {
	if v, ok := intAttr(n, "level"); ok {
		a.Level = v
	}
	if v, ok := n.Attr("quality"); ok {
		a.Quality = v
	}
	if v, ok := decimalAttr(n, "valueTableId"); ok {
		a.ValueTableID = v
	}

	if v, ok := n.Attr("requiredClass"); ok {
		setGroup(st, s, identity.GroupForClass(v))
	}

	if v, ok := n.Attr("reputation"); ok {
		fid, rank := identity.SplitComposite(v)
		switch {
		case fid == 0:
			st.logger.Debug("malformed reputation requirement",
				zap.String("skill", graph.FormatID(s.ID)), zap.String("value", v))
		case s.FactionID == 0:
			s.FactionID = fid
			s.FactionRank = rank
		case s.FactionID != fid || s.FactionRank != rank:
			st.logger.Warn("faction already set",
				zap.String("skill", graph.FormatID(s.ID)),
				zap.Uint32("faction", s.FactionID),
				zap.Uint32("ignored", fid))
		}
	}

	if v, ok := intAttr(n, "minLevel"); ok && s.MinLevel == 0 {
		s.MinLevel = v
	}
}

// setGroup persists group when the skill has none yet. A different group
// arriving later is logged and ignored.
func setGroup(st *State, s *graph.Skill, group graph.Group) bool {
	if group == graph.GroupUnknown {
		return false
	}
	if s.Group == graph.GroupUnknown {
		s.Group = group
		return true
	}
	if s.Group != group {
		st.logger.Warn("group already set",
			zap.String("skill", graph.FormatID(s.ID)),
			zap.Stringer("group", s.Group),
			zap.Stringer("ignored", group))
	}
	return false
}

// classesStage marks skills granted automatically by a class.
type classesStage struct{}

func (classesStage) Name() string { return "classes" }

func (classesStage) Extract(st *State) (Stats, error) {
	var stats Stats
	root, err := st.document("classes.xml", "classes")
	if err != nil {
		return stats, err
	}
	for _, n := range root.Elements("class") {
		key, ok := n.Attr("key")
		if !ok {
			st.skip(&stats, n.Name, "key")
			continue
		}
		grantAutomatic(st, &stats, n, identity.GroupForClass(key))
	}
	return stats, nil
}

// racesStage marks skills granted automatically by a race.
type racesStage struct{}

func (racesStage) Name() string { return "races" }

func (racesStage) Extract(st *State) (Stats, error) {
	var stats Stats
	root, err := st.document("races.xml", "races")
	if err != nil {
		return stats, err
	}
	for _, n := range root.Elements("race") {
		if _, ok := n.Attr("key"); !ok {
			st.skip(&stats, n.Name, "key")
			continue
		}
		grantAutomatic(st, &stats, n, graph.GroupRacial)
	}
	return stats, nil
}

func grantAutomatic(st *State, stats *Stats, owner *xmldoc.Node, group graph.Group) {
	for _, c := range owner.Elements("skill") {
		s, ok := st.knownSkill(c, "id")
		if !ok {
			continue
		}
		setGroup(st, s, group)
		s.AutoLevel = true
		if lvl, ok := intAttr(c, "level"); ok && s.MinLevel == 0 {
			s.MinLevel = lvl
		}
		stats.Enriched++
	}
}

// questsStage links quests rewarding a skill item to that item's Acquire.
type questsStage struct{}

func (questsStage) Name() string { return "quests" }

func (questsStage) Extract(st *State) (Stats, error) {
	var stats Stats
	if err := st.Labels.LoadAll(labelsQuests); err != nil {
		return stats, err
	}
	root, err := st.document("quests.xml", "quests")
	if err != nil {
		return stats, err
	}

	for _, n := range root.Elements("quest") {
		rewards := n.First("rewards")
		if rewards == nil {
			continue
		}
		questID, ok := decimalAttr(n, "id")
		if !ok {
			st.skip(&stats, n.Name, "id")
			continue
		}
		rawName, _ := n.Attr("name")

		for _, obj := range rewards.Elements("object") {
			itemID, ok := decimalAttr(obj, "id")
			if !ok {
				continue
			}
			for _, skillID := range st.Resolver.SkillsForItem(itemID) {
				a, err := st.Graph.AcquireFor(skillID, itemID)
				if err != nil {
					return stats, err
				}
				if a.QuestID != 0 && a.QuestID != questID {
					st.logger.Warn("quest already set",
						zap.String("skill", graph.FormatID(skillID)),
						zap.Uint32("quest", a.QuestID),
						zap.Uint32("ignored", questID))
					continue
				}
				a.QuestID = questID
				a.QuestName = st.Labels.Text(labelsQuests, rawName, idKey(questID))
				stats.Enriched++
			}
		}
	}
	return stats, nil
}
