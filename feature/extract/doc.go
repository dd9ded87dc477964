// Package extract builds the entity graph from the lore documents.
//
// Every document shape has one Extractor. The Pipeline runs them in a fixed order,
// each stage reading entities earlier stages wrote:
//
//	skills -> names -> descriptions -> items -> classes -> races -> quests ->
//	traits -> deeds -> allegiances -> factions -> currencies -> vendors ->
//	barters -> npcs -> valueTables
//
// # Failures
//
//   - A missing document, a missing root element or a label document declaring
//     the wrong locale aborts the run.
//   - A record missing a required attribute is skipped and counted.
//   - Attaching data to an Acquire that does not exist yet is an ordering
//     violation and aborts the run.
//
// # Layout
//
// Lore documents are read from <root>/lore, label documents from
// <root>/lore/labels/<locale>/<name>.xml.
package extract
