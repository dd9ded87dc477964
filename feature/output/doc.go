// Package output renders the reconciled graph into the Lua files loaded by the
// addon.
//
// SkillData.lua defines TravelDictionary:CreateDictionaries, which adds every
// skill to the dictionary of its group. LocaleData.lua holds the referenced
// factions, currencies, NPCs, deeds, allegiances and reputation ranks per
// locale. Every text goes through labels.Resolve, so a missing translation
// falls back to English.
//
// Both files are executed with go-lua before anything is written or
// published; a file that fails to load fails the run.
package output
