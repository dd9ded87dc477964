// Package identity turns the key encodings found across lore documents into ids and
// keeps the join indexes that link documents together.
//
// Encodings:
//
//   - decimal ids in lore documents ("1879064384")
//   - hex ids in the override document ("0x70003F42", prefix optional)
//   - "<factionId>;<rank>" reputation requirements
//
// Indirect label pointers ("key:...") are handled by the labels package.
package identity
