package extract

import (
	"math"
	"sort"

	"twii-miner/core/graph"
	"twii-miner/core/xmldoc"

	"go.uber.org/zap"
)

// factionsStage materialises the factions skills require, with their rank names.
type factionsStage struct{}

func (factionsStage) Name() string { return "factions" }

func (factionsStage) Extract(st *State) (Stats, error) {
	var stats Stats
	if err := st.Labels.LoadAll(labelsFactions); err != nil {
		return stats, err
	}
	root, err := st.document("factions.xml", "factions")
	if err != nil {
		return stats, err
	}

	wanted := make(map[uint32]bool)
	for _, s := range st.Graph.Skills() {
		if s.FactionID != 0 {
			wanted[s.FactionID] = true
		}
	}

	for _, n := range root.Elements("faction") {
		id, ok := decimalAttr(n, "id")
		if !ok {
			st.skip(&stats, n.Name, "id")
			continue
		}
		if !wanted[id] {
			continue
		}
		f, created := st.Graph.FindOrCreateFaction(id)
		if created {
			stats.Created++
		}
		f.Used = true
		rawName, _ := n.Attr("name")
		f.Name = st.Labels.Text(labelsFactions, rawName, idKey(id))

		for _, lvl := range n.Elements("level") {
			tier, ok := intAttr(lvl, "tier")
			if !ok {
				st.skip(&stats, lvl.Name, "tier")
				continue
			}
			key, ok := lvl.Attr("key")
			if !ok {
				st.skip(&stats, lvl.Name, "key")
				continue
			}
			rawRank, _ := lvl.Attr("name")
			name := st.Labels.Text(labelsFactions, rawRank, "")
			f.Ranks[tier] = name

			rr, _ := st.Graph.FindOrCreateRepRank(key)
			if rr.Name.Empty() {
				rr.Name = name.Clone()
			}
		}
		delete(wanted, id)
	}

	for _, id := range sortedIDs(wanted) {
		st.logger.Warn("faction not found", zap.String("faction", graph.FormatID(id)))
	}
	return stats, nil
}

func sortedIDs(set map[uint32]bool) []uint32 {
	out := make([]uint32, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// currenciesStage loads the item names barter currencies are labelled with.
type currenciesStage struct{}

func (currenciesStage) Name() string { return "currencies" }

func (currenciesStage) Extract(st *State) (Stats, error) {
	return Stats{}, st.Labels.LoadAll(labelsItems)
}

// vendorsStage attaches priced vendor sales to item Acquires.
type vendorsStage struct{}

func (vendorsStage) Name() string { return "vendors" }

func (vendorsStage) Extract(st *State) (Stats, error) {
	var stats Stats
	root, err := st.document("vendors.xml", "vendors")
	if err != nil {
		return stats, err
	}

	for _, n := range root.Elements("vendor") {
		npcID, ok := decimalAttr(n, "npcId")
		if !ok {
			st.skip(&stats, n.Name, "npcId")
			continue
		}
		sellFactor, ok := floatAttr(n, "sellFactor")
		if !ok {
			st.skip(&stats, n.Name, "sellFactor")
			continue
		}
		for _, c := range n.Elements("item") {
			itemID, ok := decimalAttr(c, "id")
			if !ok {
				continue
			}
			b := graph.Barter{BartererID: npcID, SellFactor: sellFactor}
			if err := attach(st, &stats, itemID, b); err != nil {
				return stats, err
			}
		}
	}
	return stats, nil
}

// attach records b on every skill itemID grants.
func attach(st *State, stats *Stats, itemID uint32, b graph.Barter) error {
	for _, skillID := range st.Resolver.SkillsForItem(itemID) {
		added, err := st.Graph.AttachBarter(skillID, itemID, b)
		if err != nil {
			return err
		}
		st.Resolver.AddBarterer(b.BartererID)
		if !added {
			st.logger.Warn("barterer already set",
				zap.String("skill", graph.FormatID(skillID)), zap.Uint32("npc", b.BartererID))
			continue
		}
		stats.Created++
	}
	return nil
}

// bartersStage attaches token trades to item Acquires and creates the currencies
// they are paid in.
type bartersStage struct{}

func (bartersStage) Name() string { return "barters" }

func (bartersStage) Extract(st *State) (Stats, error) {
	var stats Stats
	root, err := st.document("barters.xml", "barters")
	if err != nil {
		return stats, err
	}

	for _, n := range root.Elements("barterer") {
		npcID, ok := decimalAttr(n, "id")
		if !ok {
			st.skip(&stats, n.Name, "id")
			continue
		}
		for _, profile := range n.Elements("barterProfile") {
			for _, entry := range profile.Elements("barterEntry") {
				if err := barterEntry(st, &stats, npcID, entry); err != nil {
					return stats, err
				}
			}
		}
	}
	return stats, nil
}

func barterEntry(st *State, stats *Stats, npcID uint32, entry *xmldoc.Node) error {
	receive := entry.First("receive")
	if receive == nil {
		st.skip(stats, entry.Name, "receive")
		return nil
	}
	itemID, ok := decimalAttr(receive, "id")
	if !ok {
		st.skip(stats, receive.Name, "id")
		return nil
	}
	if len(st.Resolver.SkillsForItem(itemID)) == 0 {
		return nil
	}

	var tokens []graph.Token
	gives := entry.Elements("give")
	for _, g := range gives {
		id, ok := decimalAttr(g, "id")
		if !ok {
			st.skip(stats, g.Name, "id")
			return nil
		}
		qty, ok := intAttr(g, "quantity")
		if !ok {
			st.skip(stats, g.Name, "quantity")
			return nil
		}
		tokens = append(tokens, graph.Token{CurrencyID: id, Amount: qty})
	}
	if len(tokens) == 0 {
		st.skip(stats, entry.Name, "give")
		return nil
	}

	for i, tok := range tokens {
		c, _ := st.Graph.FindOrCreateCurrency(tok.CurrencyID)
		c.Used = true
		if c.Name.Empty() {
			rawName, _ := gives[i].Attr("name")
			c.Name = st.Labels.Text(labelsItems, rawName, idKey(tok.CurrencyID))
		}
	}
	return attach(st, stats, itemID, graph.Barter{BartererID: npcID, Tokens: tokens})
}

// npcsStage materialises the NPCs referenced as vendors or barterers.
type npcsStage struct{}

func (npcsStage) Name() string { return "npcs" }

func (npcsStage) Extract(st *State) (Stats, error) {
	var stats Stats
	if err := st.Labels.LoadAll(labelsNPCs); err != nil {
		return stats, err
	}
	root, err := st.document("npcs.xml", "npcs")
	if err != nil {
		return stats, err
	}

	for _, n := range root.Elements("npc") {
		id, ok := decimalAttr(n, "id")
		if !ok {
			st.skip(&stats, n.Name, "id")
			continue
		}
		if !st.Resolver.IsBarterer(id) {
			continue
		}
		npc, created := st.Graph.FindOrCreateNPC(id)
		if created {
			stats.Created++
		}
		rawName, _ := n.Attr("name")
		npc.Name = st.Labels.Text(labelsNPCs, rawName, idKey(id))
		if title, ok := n.Attr("title"); ok && title != "" {
			npc.TitleKey = title
			npc.Title = st.Labels.Text(labelsNPCs, title, "")
		}
	}
	return stats, nil
}

// valueTable is one price table: base amounts per item level, factors per quality.
type valueTable struct {
	levels  []int
	amounts map[int]float64
	quality map[string]float64
}

// amount returns the amount of the highest listed level not above level.
func (t *valueTable) amount(level int) (float64, bool) {
	i := sort.SearchInts(t.levels, level+1) - 1
	if i < 0 {
		return 0, false
	}
	return t.amounts[t.levels[i]], true
}

// valueTablesStage prices every vendor sale:
// buyAmt = round(amount(level) * factor(quality) * sellFactor).
// A missing quality factor counts as 1.
type valueTablesStage struct{}

func (valueTablesStage) Name() string { return "valueTables" }

func (valueTablesStage) Extract(st *State) (Stats, error) {
	var stats Stats
	root, err := st.document("valueTables.xml", "valueTables")
	if err != nil {
		return stats, err
	}

	tables := make(map[uint32]*valueTable)
	for _, n := range root.Elements("valueTable") {
		id, ok := decimalAttr(n, "id")
		if !ok {
			st.skip(&stats, n.Name, "id")
			continue
		}
		t := &valueTable{amounts: make(map[int]float64), quality: make(map[string]float64)}
		for _, v := range n.Elements("value") {
			lvl, ok := intAttr(v, "level")
			if !ok {
				continue
			}
			amt, ok := floatAttr(v, "amount")
			if !ok {
				continue
			}
			if _, dup := t.amounts[lvl]; !dup {
				t.levels = append(t.levels, lvl)
			}
			t.amounts[lvl] = amt
		}
		sort.Ints(t.levels)
		for _, q := range n.Elements("quality") {
			key, ok := q.Attr("key")
			if !ok {
				continue
			}
			if f, ok := floatAttr(q, "factor"); ok {
				t.quality[key] = f
			}
		}
		tables[id] = t
	}

	for _, s := range st.Graph.Skills() {
		for _, a := range s.Acquires {
			if a.ValueTableID == 0 {
				continue
			}
			t, ok := tables[a.ValueTableID]
			if !ok {
				st.logger.Debug("value table not found",
					zap.String("skill", graph.FormatID(s.ID)), zap.Uint32("table", a.ValueTableID))
				continue
			}
			base, ok := t.amount(a.Level)
			if !ok {
				continue
			}
			factor, ok := t.quality[a.Quality]
			if !ok {
				factor = 1
			}
			for _, b := range a.Barters {
				if !b.IsVendor() {
					continue
				}
				price := roundPrice(base * factor * b.SellFactor)
				if err := st.Graph.SetBuyAmount(s.ID, a.ItemID, b.BartererID, price); err != nil {
					return stats, err
				}
				stats.Enriched++
			}
		}
	}
	return stats, nil
}

func roundPrice(v float64) int64 {
	return int64(math.Round(v))
}
