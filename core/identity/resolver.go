package identity

import (
	"sort"
	"strings"

	"twii-miner/core/graph"
)

// Class keys used by the classes document.
const (
	ClassHunter  = "HUNTER"
	ClassWarden  = "WARDEN"
	ClassMariner = "MARINER"
)

// GroupForClass maps a class key to the skill group it grants.
// Classes without travel skills map to GroupUnknown.
func GroupForClass(key string) graph.Group {
	switch strings.ToUpper(strings.TrimSpace(key)) {
	case ClassHunter:
		return graph.GroupHunter
	case ClassWarden:
		return graph.GroupWarden
	case ClassMariner:
		return graph.GroupMariner
	}
	return graph.GroupUnknown
}

// Resolver holds the cross-document join indexes. Each index is filled by the stage
// that reads the owning document and only queried by later stages.
type Resolver struct {
	itemSkills  map[uint32][]uint32
	traitSkills map[uint32][]uint32
	deedSkills  map[uint32][]uint32
	barterers   map[uint32]bool
}

// NewResolver returns a Resolver with empty indexes.
func NewResolver() *Resolver {
	return &Resolver{
		itemSkills:  make(map[uint32][]uint32),
		traitSkills: make(map[uint32][]uint32),
		deedSkills:  make(map[uint32][]uint32),
		barterers:   make(map[uint32]bool),
	}
}

func appendUnique(ids []uint32, id uint32) []uint32 {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}

// AddItemGrant records that itemID grants skillID.
func (r *Resolver) AddItemGrant(itemID, skillID uint32) {
	r.itemSkills[itemID] = appendUnique(r.itemSkills[itemID], skillID)
}

// SkillsForItem returns the skills granted by itemID.
func (r *Resolver) SkillsForItem(itemID uint32) []uint32 {
	return r.itemSkills[itemID]
}

// Items returns every item id that grants a skill, in ascending order.
func (r *Resolver) Items() []uint32 {
	out := make([]uint32, 0, len(r.itemSkills))
	for id := range r.itemSkills {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddTrait records that traitID carries skillID.
func (r *Resolver) AddTrait(traitID, skillID uint32) {
	r.traitSkills[traitID] = appendUnique(r.traitSkills[traitID], skillID)
}

// SkillsForTrait returns the skills carried by traitID.
func (r *Resolver) SkillsForTrait(traitID uint32) []uint32 {
	return r.traitSkills[traitID]
}

// ResolveDeedReward maps the rewards of a deed to skills. Trait rewards are tried
// first; item rewards are only consulted when no trait matched.
func (r *Resolver) ResolveDeedReward(traitIDs, itemIDs []uint32) []uint32 {
	var out []uint32
	for _, t := range traitIDs {
		for _, s := range r.traitSkills[t] {
			out = appendUnique(out, s)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, i := range itemIDs {
		for _, s := range r.itemSkills[i] {
			out = appendUnique(out, s)
		}
	}
	return out
}

// AddDeed records that deedID rewards skillID.
func (r *Resolver) AddDeed(deedID, skillID uint32) {
	r.deedSkills[deedID] = appendUnique(r.deedSkills[deedID], skillID)
}

// SkillsForDeed returns the skills rewarded by deedID.
func (r *Resolver) SkillsForDeed(deedID uint32) []uint32 {
	return r.deedSkills[deedID]
}

// AddBarterer marks an NPC id as referenced by a vendor or barter record.
func (r *Resolver) AddBarterer(id uint32) {
	r.barterers[id] = true
}

// IsBarterer reports whether id was referenced as a vendor or barterer.
func (r *Resolver) IsBarterer(id uint32) bool {
	return r.barterers[id]
}
