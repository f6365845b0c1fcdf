// Package krbconf manages the shared krb5.conf used by winkrb.
//
// The package owns three concerns:
//
//   - An in-memory model of the managed subset of krb5.conf: realms, their
//     KDC sets, admin servers, and includedir directives (model.go).
//   - A codec between that model and the file's textual grammar (codec.go).
//     Sections the tool does not manage are ignored on parse and replaced
//     by a fixed preamble on render; the round-trip contract covers only
//     the managed fields.
//   - A Store that is the sole writer of the file within this process
//     (store.go). Merges are expressed as a small delta grammar (delta.go)
//     parsed into a structured instruction before any set arithmetic.
//
// Concurrent writers from other processes are not synchronized; the file
// is local trusted configuration, not a crash-consistent store.
package krbconf
