// Package domain defines the core business entities and errors for the
// study content generation pipeline.
package domain
