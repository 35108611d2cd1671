// Package orchestrator wires manifest lookup, embed building and renderer
// selection behind a single Generate call, with defaults (snippet and preview
// renderers) that callers can replace through options.
package orchestrator
