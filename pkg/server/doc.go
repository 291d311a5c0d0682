// Package server assembles the HTTP API: router, middleware, stores
// and shared services. Endpoint handlers live in the endpoints
// subpackage.
package server
