// Package reconcile merges the curated override document onto the extracted skills.
//
// # Status
//
// Each skill ends in exactly one state:
//
//   - NotFound: no override record has its id. The skill is new to the curator.
//   - Found: exactly one record has its id. The record's fields are merged.
//   - MultiFound: two or more records have its id. Nothing is merged and every
//     record is reported with its line.
//
// Records whose id matches no skill are orphans. Orphans and ambiguity are
// reported but never abort a run.
//
// # Merge
//
// Field precedence lives in one table, Rules. Extracted class data always wins
// over a curated group; every other curated field replaces the extracted value,
// and only when the record carries it.
//
// # Cache
//
// Cache keeps the last Snapshot (graph + report) per key for the HTTP server,
// rebuilt through singleflight once its TTL expires.
//
// # Usage Example
//
//	report, err := reconcile.Reconcile(g, doc, reconcile.Options{DefaultGroup: graph.GroupRep})
//	if err != nil {
//	    return err
//	}
//	report.Log(logger)
package reconcile
