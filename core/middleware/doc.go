// Package middleware groups the fiber middleware of the serve command.
//
//   - auth: rejects requests without the configured API key.
//   - rayid: tags every request with an id, echoed in the X-Ray-ID header and
//     picked up by logger.WithRayID.
package middleware
