// Package formembed builds the HTML snippets that embed a hosted form in a
// web page, inline or behind a modal button. The heavy lifting lives in
// pkg/embed; this package offers shortcuts over the manifest-driven
// orchestrator for the common cases.
package formembed
