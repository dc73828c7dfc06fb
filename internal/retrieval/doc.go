// Package retrieval provides best-effort retrieval of supporting text for
// a topic. It is a soft dependency: retrieval never returns an error to its
// caller, only a possibly partial or empty context string.
package retrieval
