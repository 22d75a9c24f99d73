// Package loader provides the plugin-like feature loading system.
//
// Each HTTP-facing feature (report, integrity, history) implements the Feature
// interface and is registered with a Manager, which loads the enabled ones onto
// the Fiber application at startup.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds the registry of features. Register adds one; LoadAll loads
// every enabled feature in registration order and rejects duplicate names.
package loader
