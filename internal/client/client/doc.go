// Package client contains client-side building blocks for PetSwap.
//
// # Overview
//
// The package provides:
//  1. An API contract (see the Client interface) to talk to the PetSwap REST
//     backend: Register, Login, Me, properties, image uploads and bookings.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that attaches the
//     bearer token and maps failures to sentinel errors or *APIError.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI,
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Server rejections are returned as *APIError carrying the status and the
// server's message. A 401 also matches ErrUnauthorized with errors.Is.
// Transport failures match ErrUnavailable.
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
