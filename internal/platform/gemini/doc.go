// Package gemini implements the generation.TextGenerator interface using
// Google's Gemini API. It is the remote-runtime adapter variant.
package gemini
