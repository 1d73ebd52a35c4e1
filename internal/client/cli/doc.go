// Package cli provides the interactive CourseHub command-line client.
//
// It wires the auth, student and instructor services into a REPL. On start
// the stored session is restored; afterwards the app reacts to auth events:
// a login reloads the user's cart, profile and wishlist, and a logout or an
// expired session drops that data and returns to the login view.
//
// Key features:
//   - Register / Login / SSO through the identity provider / Logout
//   - Dashboard, enrolled courses, summary, wishlist and cart
//   - Course Q&A: list threads, ask, reply
//   - Documents and password change
//   - Instructor registration, status and profile
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// User-facing failures are printed as notifications and never end the loop.
package cli
