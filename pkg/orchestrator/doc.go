// Package orchestrator wires the definition → declaration → form → renderer
// pipeline behind a single entry point. Definitions come from a schema store,
// an OpenAPI operation, or the request itself.
package orchestrator
