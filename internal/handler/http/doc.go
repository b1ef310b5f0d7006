// Package http implements the HTTP transport layer of the back-office API.
//
// It exposes route wiring, request handlers, and middleware for the REST
// surface. Cross-cutting concerns such as JWT authentication, request
// tracing, and access logging are handled in this package before requests
// are delegated to the service layer.
package http
