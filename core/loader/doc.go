// Package loader mounts the catalog features on the Fiber app.
//
// A feature owns its routes and decides at construction time whether it can
// run (export, for instance, needs a storage client):
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager.Register keeps registration order, and Manager.LoadAll loads the
// enabled features in that order, logging the ones it skips. The start command
// registers movies, artists, export and integrity.
package loader
