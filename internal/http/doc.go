// Package http exposes the solution content model over net/http.
//
// Admin routes mount under /admin (see AdminAPI):
//   - Solutions: /solutions, /solutions/{id}
//   - Hierarchy: /solutions/{id}/children/{childID}
//   - Categories: /categories, /categories/{id}
//
// Public routes mount under /api (see PublicAPI):
//   - Navigation: /solutions
//   - Solution read shape: /solutions/{slug}
//   - Rendered pages: /pages/{slug}
//   - Categories: /categories, /categories/{slug}
//
// Host applications can register handlers on their own mux as needed.
package http
