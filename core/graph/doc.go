// Package graph holds the entity graph built during a run.
//
// The Graph is an explicit context object: each extractor stage receives it, fills
// fields in, and never resets what an earlier stage wrote. Only the override
// reconciler replaces extracted values with curated ones.
//
// # Entities
//
//   - Skill: the unit of reconciliation, with Acquire records describing how it is obtained.
//   - Acquire / Barter / Token: item, vendor, barter, quest, deed and allegiance linkage.
//   - Faction, Currency, RepRank, NPC, Deed, Allegiance: satellites created on demand.
//
// All collections are keyed by id and every accessor returns entities in a stable
// order, so two runs over the same documents produce identical output.
package graph
