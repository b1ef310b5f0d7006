// Package server wires and runs the application's HTTP transport.
//
// It owns the http.Server lifecycle: startup, OS signal handling, and
// graceful shutdown with connection draining.
package server
