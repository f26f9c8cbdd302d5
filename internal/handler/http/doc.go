// Package http implements the HTTP transport layer of the lockbox server.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as authentication, request tracing, access
// logging, security headers and response compression are handled in this
// package before requests are delegated to the service layer.
//
// Vault payloads pass through as opaque envelopes; no handler decrypts.
package http
