package export

import (
	"twii-miner/core/graph"
	"twii-miner/core/labels"
)

// TableName is the export table.
const TableName = "travel_skills"

// TravelSkill is one exported skill row.
type TravelSkill struct {
	ID          uint32 `gorm:"column:id;primaryKey;autoIncrement:false"`
	HexID       string `gorm:"column:hex_id;size:10"`
	Grp         string `gorm:"column:grp;size:16"`
	Category    uint32 `gorm:"column:category"`
	NameEN      string `gorm:"column:name_en;size:255"`
	NameDE      string `gorm:"column:name_de;size:255"`
	NameFR      string `gorm:"column:name_fr;size:255"`
	NameRU      string `gorm:"column:name_ru;size:255"`
	MinLevel    int    `gorm:"column:min_level"`
	SortLevel   string `gorm:"column:sort_level;size:16"`
	FactionID   uint32 `gorm:"column:faction_id"`
	FactionRank int    `gorm:"column:faction_rank"`
	Acquires    int    `gorm:"column:acquire_count"`
	Status      string `gorm:"column:status;size:16"`
}

// TableName implements gorm's tabler.
func (TravelSkill) TableName() string {
	return TableName
}

// Columns lists the columns the export writes.
func Columns() []string {
	return []string{
		"id", "hex_id", "grp", "category",
		"name_en", "name_de", "name_fr", "name_ru",
		"min_level", "sort_level", "faction_id", "faction_rank",
		"acquire_count", "status",
	}
}

// Row maps a skill to its export row. Names go through the label fallback.
func Row(s *graph.Skill, fallback graph.Group) TravelSkill {
	return TravelSkill{
		ID:          s.ID,
		HexID:       graph.FormatID(s.ID),
		Grp:         s.EffectiveGroup(fallback).String(),
		Category:    uint32(s.Category),
		NameEN:      s.Name.Resolve(labels.EN),
		NameDE:      s.Name.Resolve(labels.DE),
		NameFR:      s.Name.Resolve(labels.FR),
		NameRU:      s.Name.Resolve(labels.RU),
		MinLevel:    s.EffectiveMinLevel(),
		SortLevel:   s.SortLevel,
		FactionID:   s.FactionID,
		FactionRank: s.FactionRank,
		Acquires:    len(s.Acquires),
		Status:      s.Status.String(),
	}
}
