package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"twii-miner/core/labels"
	"twii-miner/core/xmldoc"
)

const fixtureRoot = "data"

// Skill ids used across the fixture documents.
const (
	skillBree      = 1879000001
	skillBreeLand  = 1879000002
	skillNameless  = 1879000003
	skillCreep     = 1879000004
	skillHunter    = 1879000005
	skillOtherCat  = 1879000006
	skillBlacklist = 1879064384

	factionBree = 1879091345
	vendorNPC   = 300
	bartererNPC = 301
	mithrilCoin = 400
)

func fixtureConfig() Config {
	return Config{Root: fixtureRoot, DefaultGroup: "rep", Blacklist: "1879064384,1879145101"}
}

func lorePath(name string) string {
	return filepath.Join(fixtureRoot, "lore", name)
}

func labelPath(loc labels.Locale, name string) string {
	return filepath.Join(fixtureRoot, "lore", "labels", string(loc), name+".xml")
}

// labelDoc renders a label document from key/value pairs.
func labelDoc(loc labels.Locale, pairs ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<labels locale=%q>\n", string(loc))
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&b, "  <label key=%q value=%q/>\n", pairs[i], pairs[i+1])
	}
	b.WriteString("</labels>\n")
	return b.String()
}

// fixtureDocuments returns a complete data root exercising every stage.
func fixtureDocuments() xmldoc.MemReader {
	docs := xmldoc.MemReader{}

	docs[lorePath("skills.xml")] = `<skills>
  <travelSkill identifier="1879000001" category="102" description="d1"/>
  <travelSkill identifier="1879000002" category="102" description="d2"/>
  <travelSkill identifier="1879000003" category="102"/>
  <travelSkill category="102"/>
  <skill identifier="1879000004" category="97" description="d4"/>
  <skill identifier="1879000005" category="48"/>
  <skill identifier="1879064384" category="48"/>
  <skill identifier="1879000006" category="10"/>
  <skill identifier="1879000007"/>
</skills>`

	docs[lorePath("items.xml")] = `<items>
  <item key="100" name="Guide to Thorin's Hall" level="50" quality="RARE" valueTableId="900" requiredClass="HUNTER" minLevel="42">
    <grants id="1879000005" type="skill"/>
  </item>
  <item key="101" name="Bree Travel Token" level="40" quality="COMMON" valueTableId="900" reputation="1879091345;4">
    <grants id="1879000001" type="skill"/>
  </item>
  <item key="102" name="Bree-land Token" reputation="bad">
    <grants id="1879000002" type="skill"/>
  </item>
  <item key="103"><grants id="99" type="skill"/></item>
  <item name="keyless"><grants id="1879000001" type="skill"/></item>
  <item key="104" name="Plain item"/>
</items>`

	docs[lorePath("classes.xml")] = `<classes>
  <class key="HUNTER"><skill id="1879000005" level="20"/></class>
  <class key="BURGLAR"><skill id="12345" level="1"/></class>
  <class><skill id="1879000001" level="1"/></class>
</classes>`

	docs[lorePath("races.xml")] = `<races>
  <race key="DWARF"><skill id="1879000002" level="1"/></race>
</races>`

	docs[lorePath("quests.xml")] = `<quests>
  <quest id="500" name="The Road to Bree"><rewards><object id="101"/></rewards></quest>
  <quest id="501" name="Unrelated"><rewards><object id="9"/></rewards></quest>
  <quest name="No id"><rewards><object id="101"/></rewards></quest>
</quests>`

	docs[lorePath("traits.xml")] = `<traits>
  <trait identifier="600" name="Travel to Gramsfoot"><skill id="1879000004"/></trait>
  <trait identifier="601"><skill id="777"/></trait>
</traits>`

	docs[lorePath("deeds.xml")] = `<deeds>
  <deed id="700" name="Gramsfoot Explorer"><rewards><trait id="600"/><object id="102"/></rewards></deed>
  <deed id="701" name="Friend of Durin"><rewards><object id="102"/></rewards></deed>
  <deed id="702" name="Nothing"><rewards><object id="555"/></rewards></deed>
</deeds>`

	docs[lorePath("allegiances.xml")] = `<allegiances>
  <allegiance id="800" name="Durin's Folk"><deed id="701" rank="3"/><deed id="999" rank="1"/></allegiance>
</allegiances>`

	docs[lorePath("factions.xml")] = `<factions>
  <faction id="1879091345" name="key:faction:bree">
    <level tier="4" key="FRIEND" name="key:rank:friend"/>
    <level tier="5" key="ALLY" name="Ally"/>
    <level key="BROKEN"/>
  </faction>
  <faction id="1879999999" name="Unreferenced"/>
</factions>`

	docs[lorePath("vendors.xml")] = `<vendors>
  <vendor npcId="300" sellFactor="1.5"><item id="101"/><item id="100"/></vendor>
  <vendor npcId="300" sellFactor="3"><item id="101"/></vendor>
  <vendor npcId="302"><item id="101"/></vendor>
</vendors>`

	docs[lorePath("barters.xml")] = `<barters>
  <barterer id="301">
    <barterProfile profileId="1" name="Guides">
      <barterEntry>
        <give id="400" name="Mithril Coin" quantity="30"/>
        <receive id="100" name="Guide to Thorin's Hall"/>
      </barterEntry>
      <barterEntry>
        <give id="401" name="Broken"/>
        <receive id="101"/>
      </barterEntry>
    </barterProfile>
  </barterer>
</barters>`

	docs[lorePath("npcs.xml")] = `<npcs>
  <npc id="300" name="Barliman" title="key:title:provisioner"/>
  <npc id="301" name="Barterer"/>
  <npc id="303" name="Unreferenced"/>
</npcs>`

	docs[lorePath("valueTables.xml")] = `<valueTables>
  <valueTable id="900">
    <value level="40" amount="100"/>
    <value level="50" amount="200"/>
    <quality key="RARE" factor="1.5"/>
  </valueTable>
</valueTables>`

	for _, loc := range labels.All {
		for _, name := range []string{labelsSkills, labelsItems, labelsQuests, labelsDeeds, labelsFactions, labelsNPCs} {
			docs[labelPath(loc, name)] = labelDoc(loc)
		}
	}

	docs[labelPath(labels.EN, labelsSkills)] = labelDoc(labels.EN,
		"1879000001", "Return to Bree",
		"1879000002", "Return to Bree",
		"1879000004", "Return to Gramsfoot",
		"1879000005", "Guide to Thorin's Hall",
		"d1", "Bree town",
		"d2", "Bree-land homestead",
		"d4", "Never used",
	)
	docs[labelPath(labels.DE, labelsSkills)] = labelDoc(labels.DE,
		"1879000001", "Rückkehr nach Bree",
		"1879000002", "Rückkehr ins Bree-Land",
		"1879000003", "Nur Deutsch",
		"d1", "Stadt Bree",
		"d2", "Gehöft im Bree-Land",
	)
	docs[labelPath(labels.DE, labelsQuests)] = labelDoc(labels.DE, "500", "Der Weg nach Bree")
	docs[labelPath(labels.EN, labelsFactions)] = labelDoc(labels.EN,
		"key:faction:bree", "Men of Bree",
		"key:rank:friend", "Friend",
	)
	docs[labelPath(labels.DE, labelsFactions)] = labelDoc(labels.DE,
		"key:faction:bree", "Menschen von Bree",
	)
	docs[labelPath(labels.DE, labelsItems)] = labelDoc(labels.DE, "400", "Mithril-Münze")
	docs[labelPath(labels.EN, labelsNPCs)] = labelDoc(labels.EN, "key:title:provisioner", "Provisioner")
	docs[labelPath(labels.FR, labelsNPCs)] = labelDoc(labels.FR, "key:title:provisioner", "Fournisseur")

	return docs
}
