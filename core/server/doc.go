// Package server holds the HTTP server configuration used by the serve command.
//
// Besides the port and API key it carries the lifetime of the cached graph:
// the skills feature rebuilds the graph from the data root at most once per
// CacheTTL, however many requests arrive.
package server
