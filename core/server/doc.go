// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures and valid values for server settings,
// such as the roles understood by the auth middleware.
//
// # Configuration
//
// The Config struct defines the HTTP port, the admin API key, and the JWT secret
// used to verify bearer tokens.
package server
