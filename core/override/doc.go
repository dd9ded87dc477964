// Package override reads the hand-curated skill document.
//
// The document is TOML. Each group ("hunter", "warden", "mariner", "racials", "gen",
// "rep", "creep") is an array of tables, one table per skill:
//
//	[[rep]]
//	id = "0x70003F42"
//	level = 50
//	map = [{type = "ERIADOR", x = 100, y = 200}]
//	overlap = ["1879064384"]
//	label = {EN = "Thorin's Hall", DE = "Thorins Halle"}
//
//	[labels.rep]
//	EN = "Reputation"
//
// Decoding is strict: unknown keys, values of the wrong type and map locations
// missing any of type, x or y reject the whole document with the line of the
// offending record.
package override
