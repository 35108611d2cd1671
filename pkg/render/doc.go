// Package render defines the renderer contract shared by the snippet and
// preview renderers, plus a name-keyed registry used by the orchestrator.
package render
