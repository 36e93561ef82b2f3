// Package template defines the template engine seam used by the template
// form renderer. The pongo subpackage provides a pongo2 engine that loads
// templates from an fs.FS or a directory.
package template
