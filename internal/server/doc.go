// Package server owns the HTTP server lifecycle: it starts the listener,
// waits for termination signals, and drains in-flight requests on the way
// out.
package server
