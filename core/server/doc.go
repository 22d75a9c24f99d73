// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application itself; this package only
// defines the settings it reads: the listen port and the optional API key
// that protects every route.
package server
