// Package cli provides the interactive PetSwap command-line client.
//
// It wires configuration, the local token store, the API client and the
// session manager into a REPL. On start the persisted token is resolved to
// an identity; a rejected or unverifiable token is discarded silently and the
// user starts logged out.
//
// Key features:
//   - Register / Login / Logout / Me
//   - Browse properties, list a property, upload property images
//   - List and create bookings
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
