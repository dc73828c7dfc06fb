// Package workflow implements the generation state machines: the
// primary-then-fallback generation graph and the retrieve-then-generate
// RAG pipeline. Stage failures are converted into transitions here; only
// terminal errors escape, wrapped with the failing stage name.
package workflow
