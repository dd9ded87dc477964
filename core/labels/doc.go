// Package labels is the locale-aware text store.
//
// Text is kept per locale (EN, DE, FR, RU) in a Label. Every read goes through
// Resolve, which falls back to EN when the requested locale has no entry and to the
// empty string when neither has one. The fallback is applied to whole values only.
//
// The Store loads label documents (lore/labels/<locale>/<name>.xml) on first use and
// resolves indirect "key:..." pointers found in lore attributes.
package labels
