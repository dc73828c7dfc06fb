// Package generation defines the capability interface between the
// application core and external AI/LLM backends, following the hexagonal
// architecture pattern. Concrete adapters live under internal/platform.
package generation
