package output

import (
	"fmt"
	"sort"
	"strings"

	"twii-miner/core/graph"
	"twii-miner/core/labels"
)

// LocaleDataFile is the name of the localized satellite artifact.
const LocaleDataFile = "LocaleData.lua"

// entry is one satellite rendered for a single locale.
type entry struct {
	id    uint32
	name  string
	extra string
}

// RenderLocaleData renders the referenced factions, currencies, NPCs, deeds,
// allegiances and reputation ranks once per locale. Entries are ordered by
// their name under the collation of that locale.
func RenderLocaleData(g *graph.Graph) []byte {
	w := &writer{}
	w.line(0, "---[[ auto-generated locale data ]] --")
	w.line(0, "LocaleData = {")
	for _, loc := range labels.All {
		w.line(1, "%s = {", loc.Upper())
		writeEntries(w, "factions", collated(loc, factionEntries(g, loc)))
		writeEntries(w, "currencies", collated(loc, currencyEntries(g, loc)))
		writeEntries(w, "npcs", collated(loc, npcEntries(g, loc)))
		writeEntries(w, "deeds", collated(loc, deedEntries(g, loc)))
		writeEntries(w, "allegiances", collated(loc, allegianceEntries(g, loc)))

		w.line(2, "repRanks = {")
		for _, r := range g.RepRanks() {
			w.line(3, "[%s] = %s,", Quote(r.Key), Quote(r.Name.Resolve(loc)))
		}
		w.line(2, "},")
		w.line(1, "},")
	}
	w.line(0, "}")
	return w.Bytes()
}

func writeEntries(w *writer, name string, entries []entry) {
	w.line(2, "%s = {", name)
	for _, e := range entries {
		w.line(3, "{ id=%s, name=%s, %s},", hexID(e.id), Quote(e.name), e.extra)
	}
	w.line(2, "},")
}

// collated sorts entries by name for loc, then by id.
func collated(loc labels.Locale, entries []entry) []entry {
	c := loc.Collator()
	sort.SliceStable(entries, func(i, j int) bool {
		if cmp := c.CompareString(entries[i].name, entries[j].name); cmp != 0 {
			return cmp < 0
		}
		return entries[i].id < entries[j].id
	})
	return entries
}

func factionEntries(g *graph.Graph, loc labels.Locale) []entry {
	var out []entry
	for _, f := range g.Factions() {
		if !f.Used {
			continue
		}
		tiers := make([]int, 0, len(f.Ranks))
		for tier := range f.Ranks {
			tiers = append(tiers, tier)
		}
		sort.Ints(tiers)
		ranks := make([]string, 0, len(tiers))
		for _, tier := range tiers {
			ranks = append(ranks, fmt.Sprintf("[%d]=%s", tier, Quote(f.Ranks[tier].Resolve(loc))))
		}
		extra := ""
		if len(ranks) > 0 {
			extra = fmt.Sprintf("ranks={ %s }, ", strings.Join(ranks, ", "))
		}
		out = append(out, entry{id: f.ID, name: f.Name.Resolve(loc), extra: extra})
	}
	return out
}

func currencyEntries(g *graph.Graph, loc labels.Locale) []entry {
	var out []entry
	for _, c := range g.Currencies() {
		if !c.Used {
			continue
		}
		out = append(out, entry{id: c.ID, name: c.Name.Resolve(loc)})
	}
	return out
}

func npcEntries(g *graph.Graph, loc labels.Locale) []entry {
	var out []entry
	for _, n := range g.NPCs() {
		extra := ""
		if title := n.Title.Resolve(loc); title != "" {
			extra = fmt.Sprintf("title=%s, ", Quote(title))
		}
		out = append(out, entry{id: n.ID, name: n.Name.Resolve(loc), extra: extra})
	}
	return out
}

func deedEntries(g *graph.Graph, loc labels.Locale) []entry {
	var out []entry
	for _, d := range g.Deeds() {
		out = append(out, entry{id: d.ID, name: d.Name.Resolve(loc)})
	}
	return out
}

func allegianceEntries(g *graph.Graph, loc labels.Locale) []entry {
	var out []entry
	for _, a := range g.Allegiances() {
		extra := ""
		if a.Rank > 0 {
			extra = fmt.Sprintf("rank=%d, ", a.Rank)
		}
		out = append(out, entry{id: a.ID, name: a.Name.Resolve(loc), extra: extra})
	}
	return out
}
