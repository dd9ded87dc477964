// Package logger builds the zap logger shared by the commands, the pipeline and
// the HTTP features.
//
// Level "debug" selects the development configuration, anything else the
// production one. Format "console" switches to the console encoder with
// coloured levels and no stack traces; otherwise entries are JSON with the keys
// level, time and message.
//
// WithRayID attaches the request id set by the rayid middleware, so every line
// logged while serving one request can be correlated:
//
//	l := logger.WithRayID(log, c)
//	l.Error("failed to rebuild graph", zap.Error(err))
package logger
