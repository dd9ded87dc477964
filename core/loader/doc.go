// Package loader registers the HTTP features of the serve command.
//
// Each feature implements Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager loads enabled features in registration order; a feature that
// fails to load stops the server from starting.
package loader
