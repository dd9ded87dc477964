// Package skills serves the reconciled skill catalogue over HTTP.
//
// Routes:
//
//	GET  /skills           list, filtered by ?group= and ?status=
//	GET  /skills/:id       one skill by hex or decimal id
//	POST /skills/rebuild   drop the cached build and rebuild now
//	GET  /report           reconciliation report (?format=yaml)
//
// Every request reads the same cached build. An expired build is rebuilt on the
// next request; concurrent requests share that one rebuild.
package skills
