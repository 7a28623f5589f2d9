// Package movies implements movie management.
//
// A movie owns its links to artists: creating or editing a movie submits the
// full set of selected artist ids, and the service reconciles the stored
// movies_artists rows against that set in the same transaction as the scalar
// update. Deleting a movie removes its join rows first.
//
// Routes:
//
//	GET    /api/movies           list
//	POST   /api/movies           create (admin)
//	GET    /api/movies/:id       get
//	PUT    /api/movies/:id       update (admin)
//	DELETE /api/movies/:id       delete (admin)
//	POST   /api/movies/:id/plan  preview link changes (admin)
//
// The /movies routes serve the same operations to HTML forms, reading the
// repeated selectedOptions field and redirecting with 303 after a mutation.
package movies
