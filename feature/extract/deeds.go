package extract

import (
	"twii-miner/core/labels"
)

// traitsStage indexes traits carrying a known skill.
type traitsStage struct{}

func (traitsStage) Name() string { return "traits" }

func (traitsStage) Extract(st *State) (Stats, error) {
	var stats Stats
	root, err := st.document("traits.xml", "traits")
	if err != nil {
		return stats, err
	}
	for _, n := range root.Elements("trait") {
		skills := n.Elements("skill")
		if len(skills) == 0 {
			continue
		}
		traitID, ok := decimalAttr(n, "identifier")
		if !ok {
			st.skip(&stats, n.Name, "identifier")
			continue
		}
		for _, c := range skills {
			s, ok := st.knownSkill(c, "id")
			if !ok {
				continue
			}
			st.Resolver.AddTrait(traitID, s.ID)
			stats.Created++
		}
	}
	return stats, nil
}

// deedsStage adds a deed Acquire to every skill a deed rewards, through a
// trait when one matches and through an item otherwise.
type deedsStage struct{}

func (deedsStage) Name() string { return "deeds" }

func (deedsStage) Extract(st *State) (Stats, error) {
	var stats Stats
	if err := st.Labels.LoadAll(labelsDeeds); err != nil {
		return stats, err
	}
	root, err := st.document("deeds.xml", "deeds")
	if err != nil {
		return stats, err
	}

	for _, n := range root.Elements("deed") {
		rewards := n.First("rewards")
		if rewards == nil {
			continue
		}
		deedID, ok := decimalAttr(n, "id")
		if !ok {
			st.skip(&stats, n.Name, "id")
			continue
		}

		var traits, items []uint32
		for _, c := range rewards.Elements("trait") {
			if id, ok := decimalAttr(c, "id"); ok {
				traits = append(traits, id)
			}
		}
		for _, c := range rewards.Elements("object") {
			if id, ok := decimalAttr(c, "id"); ok {
				items = append(items, id)
			}
		}

		skillIDs := st.Resolver.ResolveDeedReward(traits, items)
		if len(skillIDs) == 0 {
			continue
		}

		deed, _ := st.Graph.FindOrCreateDeed(deedID)
		if deed.Name.Empty() {
			rawName, _ := n.Attr("name")
			deed.Name = st.Labels.Text(labelsDeeds, rawName, idKey(deedID))
		}

		for _, skillID := range skillIDs {
			s, ok := st.Graph.Skill(skillID)
			if !ok {
				continue
			}
			if _, created := s.AcquireByDeed(deedID); created {
				stats.Created++
			}
			st.Resolver.AddDeed(deedID, skillID)
		}
	}
	return stats, nil
}

// allegiancesStage links allegiance ranks to the deed Acquires they reward.
type allegiancesStage struct{}

func (allegiancesStage) Name() string { return "allegiances" }

func (allegiancesStage) Extract(st *State) (Stats, error) {
	var stats Stats
	root, err := st.document("allegiances.xml", "allegiances")
	if err != nil {
		return stats, err
	}

	for _, n := range root.Elements("allegiance") {
		allegianceID, ok := decimalAttr(n, "id")
		if !ok {
			st.skip(&stats, n.Name, "id")
			continue
		}
		for _, c := range n.Elements("deed") {
			deedID, ok := decimalAttr(c, "id")
			if !ok {
				st.skip(&stats, c.Name, "id")
				continue
			}
			rank, _ := intAttr(c, "rank")
			for _, skillID := range st.Resolver.SkillsForDeed(deedID) {
				a, err := st.Graph.DeedAcquireFor(skillID, deedID)
				if err != nil {
					return stats, err
				}
				a.AllegianceID = allegianceID
				a.AllegianceRank = rank

				al, created := st.Graph.FindOrCreateAllegiance(allegianceID)
				if created {
					rawName, _ := n.Attr("name")
					al.Name = labels.Literal(rawName)
					stats.Created++
				}
				if rank > al.Rank {
					al.Rank = rank
				}
				stats.Enriched++
			}
		}
	}
	return stats, nil
}
