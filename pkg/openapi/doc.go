// Package openapi derives form definitions from OpenAPI 3 documents. Each
// operation's request body schema becomes a schema.Definition whose fields
// follow the schema's properties, constraints and formats.
package openapi
