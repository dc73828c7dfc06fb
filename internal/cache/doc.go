// Package cache provides a TTL-keyed store of previously computed
// generation results. Two implementations are available: an in-process
// map with a background sweep, and a Redis-backed variant that delegates
// expiry to the server.
package cache
