// Package client contains the client-side building blocks of the school admin
// console.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     school backend: Ping, the OTP login calls, Logout, Profile and CRUD over
//     record collections.
//  2. A REST implementation (see RESTClient) on top of httpx, which injects
//     the bearer token, fails over to the secondary origin once, unwraps the
//     {code,status,message,data} response envelope and normalises object keys
//     to snake_case before decoding.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are mapped to sentinel errors that callers match with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrRejected. Server messages
// and field errors travel in *APIError.
package client
