package output

import (
	"fmt"
	"strings"

	"twii-miner/core/graph"
	"twii-miner/core/labels"
)

// SkillDataFile is the name of the skill dictionary artifact.
const SkillDataFile = "SkillData.lua"

// RenderSkillData renders every skill under its effective group. Groups are
// emitted in graph.Groups order, skills in id order within a group.
func RenderSkillData(g *graph.Graph, fallback graph.Group) []byte {
	w := &writer{}
	w.line(0, "---[[ auto-generated travel skills ]] --")
	w.line(0, "-- add the data to custom dictionaries to maintain the order")
	w.line(0, "function TravelDictionary:CreateDictionaries()")

	skills := g.Skills()
	for _, group := range graph.Groups {
		w.line(1, "-- add the %s locations", group)
		if tag, ok := g.LabelTags[group]; ok && !tag.Empty() {
			w.line(1, "self.%s:AddLabelTag(%s)", group, labelTable(tag))
		}
		for _, s := range skills {
			if s.EffectiveGroup(fallback) != group {
				continue
			}
			writeSkill(w, group, s)
		}
	}
	w.line(0, "end")
	return w.Bytes()
}

func writeSkill(w *writer, group graph.Group, s *graph.Skill) {
	w.line(1, "self.%s:AddSkill({", group)
	w.line(2, "id=%s,", hexID(s.ID))

	fields := []namedLabel{
		{"label", s.Label},
		{"zone", s.Zone},
		{"zoneLabel", s.ZoneLabel},
		{"detail", s.Detail},
		{"acquire", s.AcquireDesc},
	}
	for _, loc := range labels.All {
		desc := ""
		if s.NeedsDesc() && !s.Desc.Empty() {
			desc = fmt.Sprintf("desc=%s, ", Quote(s.Desc.Resolve(loc)))
		}
		w.line(2, "%s={ name=%s, %s%s},", loc.Upper(), Quote(s.Name.Resolve(loc)), desc, localeFields(loc, fields))
	}

	w.line(2, "map=%s,", mapList(s.MapList))
	if len(s.OverlapIDs) > 0 {
		w.line(2, "overlap=%s,", idList(s.OverlapIDs))
	}
	if s.Tag != "" {
		w.line(2, "tag=%s,", Quote(s.Tag))
	}
	if lvl := s.EffectiveMinLevel(); lvl > 0 {
		w.line(2, "minLevel=%d,", lvl)
	}
	if s.StoreLP {
		w.line(2, "store=true,")
	}
	if s.AutoLevel {
		w.line(2, "autoLevel=true,")
	}
	if s.AutoRep {
		w.line(2, "autoRep=true,")
	}
	if s.FactionID != 0 {
		w.line(2, "faction={ id=%s, rank=%d },", hexID(s.FactionID), s.FactionRank)
	}
	if len(s.Acquires) > 0 {
		w.line(2, "acquire={")
		for _, a := range s.Acquires {
			w.line(3, "{ %s},", acquireFields(a))
		}
		w.line(2, "},")
	}
	if lvl := sortLevel(s.SortLevel); lvl != "" {
		w.line(2, "level=%s,", lvl)
	}
	w.line(1, "})")
}

func acquireFields(a *graph.Acquire) string {
	var b strings.Builder
	if a.ItemID != 0 {
		fmt.Fprintf(&b, "item=%s, ", hexID(a.ItemID))
	}
	if a.Level > 0 {
		fmt.Fprintf(&b, "level=%d, ", a.Level)
	}
	if a.Quality != "" {
		fmt.Fprintf(&b, "quality=%s, ", Quote(a.Quality))
	}
	if a.QuestID != 0 {
		fmt.Fprintf(&b, "quest=%s, ", hexID(a.QuestID))
		if !a.QuestName.Empty() {
			fmt.Fprintf(&b, "questName=%s, ", labelTable(a.QuestName))
		}
	}
	if a.DeedID != 0 {
		fmt.Fprintf(&b, "deed=%s, ", hexID(a.DeedID))
	}
	if a.AllegianceID != 0 {
		fmt.Fprintf(&b, "allegiance=%s, rank=%d, ", hexID(a.AllegianceID), a.AllegianceRank)
	}
	if len(a.Barters) > 0 {
		parts := make([]string, 0, len(a.Barters))
		for _, br := range a.Barters {
			parts = append(parts, barterFields(br))
		}
		fmt.Fprintf(&b, "barters={%s}, ", strings.Join(parts, ", "))
	}
	return b.String()
}

func barterFields(br *graph.Barter) string {
	if br.IsVendor() {
		return fmt.Sprintf("{ npc=%s, cost=%d }", hexID(br.BartererID), br.BuyAmt)
	}
	tokens := make([]string, 0, len(br.Tokens))
	for _, t := range br.Tokens {
		tokens = append(tokens, fmt.Sprintf("{ currency=%s, amount=%d }", hexID(t.CurrencyID), t.Amount))
	}
	return fmt.Sprintf("{ npc=%s, tokens={%s} }", hexID(br.BartererID), strings.Join(tokens, ", "))
}
