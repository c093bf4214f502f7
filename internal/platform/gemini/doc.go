// Package gemini provides an implementation of the generation.Gateway
// interface that uses Google's Gemini API for text generation.
//
// This package is an infrastructure adapter: it connects the generation
// pipeline to Google's external service without exposing the details of the
// genai client to the core. It handles authentication, per-call timeouts,
// and the translation of API failures into the generation error taxonomy so
// the retry layer can classify them without knowing anything about Gemini.
package gemini
