// Package template defines the template engine seam used by renderers that
// wrap embed snippets in larger documents. The pongo subpackage provides the
// default implementation.
package template
