// Package app assembles the forecast server: configuration, logging,
// services, router, and graceful lifecycle.
package app
