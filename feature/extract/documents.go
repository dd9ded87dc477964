package extract

// Document names a lore document and the root element it must carry.
type Document struct {
	File string `json:"file"`
	Root string `json:"root"`
}

// LoreDocuments lists every lore document a run reads, in stage order.
var LoreDocuments = []Document{
	{"skills.xml", "skills"},
	{"items.xml", "items"},
	{"classes.xml", "classes"},
	{"races.xml", "races"},
	{"quests.xml", "quests"},
	{"traits.xml", "traits"},
	{"deeds.xml", "deeds"},
	{"allegiances.xml", "allegiances"},
	{"factions.xml", "factions"},
	{"vendors.xml", "vendors"},
	{"barters.xml", "barters"},
	{"npcs.xml", "npcs"},
	{"valueTables.xml", "valueTables"},
}

// LabelDocuments lists the label documents read in every locale.
var LabelDocuments = []string{
	labelsSkills,
	labelsItems,
	labelsQuests,
	labelsDeeds,
	labelsFactions,
	labelsNPCs,
}
