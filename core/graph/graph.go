package graph

import (
	"errors"
	"fmt"
	"sort"

	"twii-miner/core/labels"
)

// ErrOrderingViolation is returned when derived data is attached to an Acquire or
// Skill that an earlier stage should have created.
var ErrOrderingViolation = errors.New("ordering violation")

// Graph owns every entity built during one run. Identity is the id alone:
// FindOrCreate* never creates a second entity for an id already present.
type Graph struct {
	skills      map[uint32]*Skill
	factions    map[uint32]*Faction
	currencies  map[uint32]*Currency
	npcs        map[uint32]*NPC
	ranks       map[string]*RepRank
	deeds       map[uint32]*Deed
	allegiances map[uint32]*Allegiance

	// LabelTags holds the per-group heading text supplied by the override document.
	LabelTags map[Group]labels.Label
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		skills:      make(map[uint32]*Skill),
		factions:    make(map[uint32]*Faction),
		currencies:  make(map[uint32]*Currency),
		npcs:        make(map[uint32]*NPC),
		ranks:       make(map[string]*RepRank),
		deeds:       make(map[uint32]*Deed),
		allegiances: make(map[uint32]*Allegiance),
		LabelTags:   make(map[Group]labels.Label),
	}
}

// Skill returns the skill with id.
func (g *Graph) Skill(id uint32) (*Skill, bool) {
	s, ok := g.skills[id]
	return s, ok
}

// FindOrCreateSkill returns the skill with id, creating an empty one if needed.
// The bool result reports creation.
func (g *Graph) FindOrCreateSkill(id uint32) (*Skill, bool) {
	if s, ok := g.skills[id]; ok {
		return s, false
	}
	s := &Skill{ID: id, Name: labels.Label{}}
	g.skills[id] = s
	return s, true
}

// RemoveSkill drops a skill that turned out to be incomplete.
func (g *Graph) RemoveSkill(id uint32) {
	delete(g.skills, id)
}

// Skills returns every skill ordered by id.
func (g *Graph) Skills() []*Skill {
	out := make([]*Skill, 0, len(g.skills))
	for _, s := range g.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SkillCount returns the number of skills.
func (g *Graph) SkillCount() int {
	return len(g.skills)
}

// AcquireFor returns the Acquire of skillID for itemID. A missing skill or Acquire
// means a stage ran before the one that creates them.
func (g *Graph) AcquireFor(skillID, itemID uint32) (*Acquire, error) {
	s, ok := g.skills[skillID]
	if !ok {
		return nil, fmt.Errorf("skill %s: %w", FormatID(skillID), ErrOrderingViolation)
	}
	a := s.findItemAcquire(itemID)
	if a == nil {
		return nil, fmt.Errorf("skill %s has no acquire for item %s: %w",
			FormatID(skillID), FormatID(itemID), ErrOrderingViolation)
	}
	return a, nil
}

// DeedAcquireFor returns the Acquire of skillID rewarded by deedID.
func (g *Graph) DeedAcquireFor(skillID, deedID uint32) (*Acquire, error) {
	s, ok := g.skills[skillID]
	if !ok {
		return nil, fmt.Errorf("skill %s: %w", FormatID(skillID), ErrOrderingViolation)
	}
	a := s.findDeedAcquire(deedID)
	if a == nil {
		return nil, fmt.Errorf("skill %s has no acquire for deed %s: %w",
			FormatID(skillID), FormatID(deedID), ErrOrderingViolation)
	}
	return a, nil
}

// AttachBarter records b on the Acquire of skillID for itemID.
// The bool result is false when the barterer was already recorded; the first
// record is kept.
func (g *Graph) AttachBarter(skillID, itemID uint32, b Barter) (bool, error) {
	a, err := g.AcquireFor(skillID, itemID)
	if err != nil {
		return false, err
	}
	if a.Barter(b.BartererID) != nil {
		return false, nil
	}
	a.Barters = append(a.Barters, &b)
	return true, nil
}

// SetBuyAmount stores the computed vendor price on the barter of bartererID.
func (g *Graph) SetBuyAmount(skillID, itemID, bartererID uint32, amount int64) error {
	a, err := g.AcquireFor(skillID, itemID)
	if err != nil {
		return err
	}
	b := a.Barter(bartererID)
	if b == nil {
		return fmt.Errorf("skill %s item %s has no barter for %s: %w",
			FormatID(skillID), FormatID(itemID), FormatID(bartererID), ErrOrderingViolation)
	}
	b.BuyAmt = amount
	return nil
}

// FindOrCreateFaction returns the faction with id, creating it if needed.
func (g *Graph) FindOrCreateFaction(id uint32) (*Faction, bool) {
	if f, ok := g.factions[id]; ok {
		return f, false
	}
	f := &Faction{ID: id, Name: labels.Label{}, Ranks: make(map[int]labels.Label)}
	g.factions[id] = f
	return f, true
}

// Faction returns the faction with id.
func (g *Graph) Faction(id uint32) (*Faction, bool) {
	f, ok := g.factions[id]
	return f, ok
}

// Factions returns every faction ordered by id.
func (g *Graph) Factions() []*Faction {
	out := make([]*Faction, 0, len(g.factions))
	for _, f := range g.factions {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindOrCreateCurrency returns the currency with id, creating it if needed.
func (g *Graph) FindOrCreateCurrency(id uint32) (*Currency, bool) {
	if c, ok := g.currencies[id]; ok {
		return c, false
	}
	c := &Currency{ID: id, Name: labels.Label{}}
	g.currencies[id] = c
	return c, true
}

// Currencies returns every currency ordered by id.
func (g *Graph) Currencies() []*Currency {
	out := make([]*Currency, 0, len(g.currencies))
	for _, c := range g.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindOrCreateNPC returns the NPC with id, creating it if needed.
func (g *Graph) FindOrCreateNPC(id uint32) (*NPC, bool) {
	if n, ok := g.npcs[id]; ok {
		return n, false
	}
	n := &NPC{ID: id, Name: labels.Label{}, Title: labels.Label{}}
	g.npcs[id] = n
	return n, true
}

// NPCs returns every NPC ordered by id.
func (g *Graph) NPCs() []*NPC {
	out := make([]*NPC, 0, len(g.npcs))
	for _, n := range g.npcs {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindOrCreateRepRank returns the reputation tier with key, creating it if needed.
func (g *Graph) FindOrCreateRepRank(key string) (*RepRank, bool) {
	if r, ok := g.ranks[key]; ok {
		return r, false
	}
	r := &RepRank{Key: key, Name: labels.Label{}}
	g.ranks[key] = r
	return r, true
}

// RepRanks returns every reputation tier ordered by key.
func (g *Graph) RepRanks() []*RepRank {
	out := make([]*RepRank, 0, len(g.ranks))
	for _, r := range g.ranks {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// FindOrCreateDeed returns the deed with id, creating it if needed.
func (g *Graph) FindOrCreateDeed(id uint32) (*Deed, bool) {
	if d, ok := g.deeds[id]; ok {
		return d, false
	}
	d := &Deed{ID: id, Name: labels.Label{}}
	g.deeds[id] = d
	return d, true
}

// Deeds returns every deed ordered by id.
func (g *Graph) Deeds() []*Deed {
	out := make([]*Deed, 0, len(g.deeds))
	for _, d := range g.deeds {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindOrCreateAllegiance returns the allegiance with id, creating it if needed.
func (g *Graph) FindOrCreateAllegiance(id uint32) (*Allegiance, bool) {
	if a, ok := g.allegiances[id]; ok {
		return a, false
	}
	a := &Allegiance{ID: id, Name: labels.Label{}}
	g.allegiances[id] = a
	return a, true
}

// Allegiances returns every allegiance ordered by id.
func (g *Graph) Allegiances() []*Allegiance {
	out := make([]*Allegiance, 0, len(g.allegiances))
	for _, a := range g.allegiances {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
