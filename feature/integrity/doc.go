// Package integrity checks that a miner deployment can run and that its last
// publish is usable.
//
// # Checks Provided
//
//   - Data: every lore document exists under the data root with its root
//     element, and every label document exists in every locale.
//   - Bucket: the bucket exists, the published artifacts are present under
//     the prefix and the published SkillData.lua still loads.
//   - Database: the export table has every column of the export model with a
//     compatible type.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/data : Runs the data root check (supports ?fix=true).
//   - GET /integrity/bucket : Runs the bucket check (supports ?fix=true).
//   - GET /integrity/database : Runs the export schema check.
package integrity
