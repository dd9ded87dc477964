package graph

import (
	"twii-miner/core/labels"
)

// Token is one currency amount handed over in a barter trade.
type Token struct {
	CurrencyID uint32 `json:"currency_id"`
	Amount     int    `json:"amount"`
}

// Barter is one way of paying for the item behind an Acquire.
// A vendor sale carries a SellFactor; a barter trade carries Tokens. Never both.
type Barter struct {
	BartererID uint32  `json:"barterer_id"`
	SellFactor float64 `json:"sell_factor,omitempty"`
	Tokens     []Token `json:"tokens,omitempty"`
	// BuyAmt is the vendor price, filled in after value tables are read.
	BuyAmt int64 `json:"buy_amt,omitempty"`
}

// IsVendor reports whether the barter is a priced vendor sale.
func (b *Barter) IsVendor() bool {
	return len(b.Tokens) == 0
}

// Acquire is one documented way of obtaining a skill.
type Acquire struct {
	ItemID       uint32 `json:"item_id,omitempty"`
	ValueTableID uint32 `json:"value_table_id,omitempty"`
	Level        int    `json:"level,omitempty"`
	Quality      string `json:"quality,omitempty"`

	Barters []*Barter `json:"barters,omitempty"`

	QuestID   uint32       `json:"quest_id,omitempty"`
	QuestName labels.Label `json:"quest_name,omitempty"`

	DeedID         uint32 `json:"deed_id,omitempty"`
	AllegianceID   uint32 `json:"allegiance_id,omitempty"`
	AllegianceRank int    `json:"allegiance_rank,omitempty"`
}

// Barter returns the barter already recorded for a barterer, or nil.
func (a *Acquire) Barter(bartererID uint32) *Barter {
	for _, b := range a.Barters {
		if b.BartererID == bartererID {
			return b
		}
	}
	return nil
}

// Skill is the unit of reconciliation.
type Skill struct {
	ID       uint32   `json:"id"`
	Category Category `json:"category"`
	Group    Group    `json:"group"`

	Name labels.Label `json:"name"`
	// Desc is only populated for skills whose name collides with another skill.
	Desc    labels.Label `json:"desc,omitempty"`
	DescKey string       `json:"-"`
	// NameCollisions records the locales in which the name is shared.
	NameCollisions map[labels.Locale]bool `json:"-"`

	Label       labels.Label `json:"label,omitempty"`
	Zone        labels.Label `json:"zone,omitempty"`
	ZoneLabel   labels.Label `json:"zone_label,omitempty"`
	Detail      labels.Label `json:"detail,omitempty"`
	AcquireDesc labels.Label `json:"acquire_desc,omitempty"`
	Tag         string       `json:"tag,omitempty"`

	MapList    []MapLoc `json:"map,omitempty"`
	OverlapIDs []uint32 `json:"overlap,omitempty"`
	Acquires   []*Acquire `json:"acquire,omitempty"`

	FactionID   uint32 `json:"faction_id,omitempty"`
	FactionRank int    `json:"faction_rank,omitempty"`

	MinLevel      int    `json:"min_level,omitempty"`
	MinLevelInput int    `json:"min_level_input,omitempty"`
	SortLevel     string `json:"level"`

	StoreLP   bool `json:"store,omitempty"`
	AutoLevel bool `json:"auto_level,omitempty"`
	AutoRep   bool `json:"auto_rep,omitempty"`

	Status Status `json:"status"`
}

// NeedsDesc reports whether the skill must carry a disambiguating description.
func (s *Skill) NeedsDesc() bool {
	return len(s.NameCollisions) > 0
}

// EffectiveMinLevel prefers the level parsed from game data and falls back to the
// curated one.
func (s *Skill) EffectiveMinLevel() int {
	if s.MinLevel > 0 {
		return s.MinLevel
	}
	return s.MinLevelInput
}

// EffectiveGroup resolves the group at read time. The persisted group always wins;
// otherwise the category decides; otherwise fallback is used. Nothing is written back.
func (s *Skill) EffectiveGroup(fallback Group) Group {
	if s.Group != GroupUnknown {
		return s.Group
	}
	switch s.Category {
	case CategoryCreep:
		return GroupCreep
	case CategoryHunter:
		return GroupHunter
	}
	return fallback
}

// AcquireByItem returns the Acquire for itemID, creating it on first use.
func (s *Skill) AcquireByItem(itemID uint32) (*Acquire, bool) {
	if a := s.findItemAcquire(itemID); a != nil {
		return a, false
	}
	a := &Acquire{ItemID: itemID}
	s.Acquires = append(s.Acquires, a)
	return a, true
}

// AcquireByDeed returns the Acquire rewarded by deedID, creating it on first use.
func (s *Skill) AcquireByDeed(deedID uint32) (*Acquire, bool) {
	if a := s.findDeedAcquire(deedID); a != nil {
		return a, false
	}
	a := &Acquire{DeedID: deedID}
	s.Acquires = append(s.Acquires, a)
	return a, true
}

func (s *Skill) findItemAcquire(itemID uint32) *Acquire {
	for _, a := range s.Acquires {
		if a.ItemID == itemID && a.DeedID == 0 {
			return a
		}
	}
	return nil
}

func (s *Skill) findDeedAcquire(deedID uint32) *Acquire {
	for _, a := range s.Acquires {
		if a.DeedID == deedID {
			return a
		}
	}
	return nil
}

// Faction is a reputation faction with its tier labels.
type Faction struct {
	ID    uint32               `json:"id"`
	Name  labels.Label         `json:"name"`
	Ranks map[int]labels.Label `json:"ranks,omitempty"`
	Used  bool                 `json:"-"`
}

// Currency is an item used as barter payment.
type Currency struct {
	ID   uint32       `json:"id"`
	Name labels.Label `json:"name"`
	Used bool         `json:"-"`
}

// RepRank is a reputation tier, shared by every faction using the same tier key.
type RepRank struct {
	Key  string       `json:"key"`
	Name labels.Label `json:"name"`
}

// NPC is a vendor or barterer.
type NPC struct {
	ID       uint32       `json:"id"`
	TitleKey string       `json:"-"`
	Name     labels.Label `json:"name"`
	Title    labels.Label `json:"title,omitempty"`
}

// Deed is a deed rewarding a skill.
type Deed struct {
	ID   uint32       `json:"id"`
	Name labels.Label `json:"name"`
}

// Allegiance is an allegiance whose rank progression rewards a deed.
type Allegiance struct {
	ID   uint32       `json:"id"`
	Rank int          `json:"rank,omitempty"`
	Name labels.Label `json:"name"`
}
