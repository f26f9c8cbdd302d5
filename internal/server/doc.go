// Package server runs the vault API listeners: the REST API over HTTP and the
// gRPC health endpoint. Both stop together on SIGINT, SIGTERM or SIGQUIT.
package server
