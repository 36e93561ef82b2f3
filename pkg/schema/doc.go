// Package schema loads declarative form definitions from JSON or YAML and
// builds forms.Declaration values from them.
//
// A definition file holds either a single definition or a "forms" list:
//
//	forms:
//	  - name: contact
//	    fields:
//	      - name: email
//	        type: email
//	      - name: message
//	        type: char
//	        widget: textarea
//	        max_length: 500
//
// Definitions may extend another definition by name; the child's fields
// override the parent's by name and new fields are appended.
package schema
