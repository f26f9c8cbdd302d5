package server

// Server owns the HTTP and gRPC listeners of the vault process.
type Server interface {
	// RunServer serves until the process receives a termination signal.
	RunServer()
	// Shutdown drains in-flight requests and closes every listener.
	Shutdown()
}
