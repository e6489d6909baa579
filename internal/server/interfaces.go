package server

// Server is the lifecycle contract of the transport layer.
//
// RunServer blocks until a stop signal arrives or the listener fails;
// Shutdown drains in-flight requests and releases the listener.
type Server interface {
	RunServer()
	Shutdown()
}
