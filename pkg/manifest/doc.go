// Package manifest loads embed declarations from YAML or JSON documents.
//
// A manifest names each embed and lists the same settings the embed builder
// exposes:
//
//	embeds:
//	  contact:
//	    form: abc123
//	    type: modal
//	    modal: slider
//	    label: Talk to us
//	    library: {enabled: true, async: true}
//	    options: {size: 80, hideHeaders: true}
//	    hidden: {source: landing}
//
// Key order under `embeds`, `options` and `hidden` is preserved, so the
// rendered attribute order follows the document. Problems across every embed
// in a document are reported together.
package manifest
