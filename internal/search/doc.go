// Package search provides web search for supplementary study material.
// The exported Service contract never fails: any internal error yields an
// empty result list.
package search
