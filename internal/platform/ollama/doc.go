// Package ollama implements the generation.TextGenerator and
// retrieval.Embedder interfaces against a local Ollama runtime. It is the
// local-runtime adapter variant.
package ollama
