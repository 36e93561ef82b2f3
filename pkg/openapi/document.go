package openapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// ErrOperationNotFound is returned for an unknown operation id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Extension keys read from schemas.
const (
	// ExtensionWidget names a widget for a property.
	ExtensionWidget = "x-formkit-widget"
	// ExtensionOrder lists property names in field order on an object schema.
	ExtensionOrder = "x-formkit-order"
)

// preferred request body media types, most form-like first.
var requestMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Operation summarises one operation of a document.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string

	op *openapi3.Operation
}

// Document is a parsed OpenAPI document.
type Document struct {
	spec *openapi3.T
}

// Operations lists every operation, sorted by id. Operations without an
// operationId are named "method:path".
func (d *Document) Operations() []Operation {
	if d == nil || d.spec == nil || d.spec.Paths == nil {
		return nil
	}
	var out []Operation
	for path, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, Operation{ID: id, Method: strings.ToUpper(method), Path: path, Summary: op.Summary, op: op})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Operation finds an operation by id.
func (d *Document) Operation(id string) (Operation, error) {
	for _, op := range d.Operations() {
		if op.ID == id {
			return op, nil
		}
	}
	return Operation{}, fmt.Errorf("%w: %q", ErrOperationNotFound, id)
}

// Definition builds a form definition from the operation's request body.
func (d *Document) Definition(operationID string) (schema.Definition, error) {
	op, err := d.Operation(operationID)
	if err != nil {
		return schema.Definition{}, err
	}
	body := requestSchema(op.op.RequestBody)
	if body == nil {
		return schema.Definition{}, fmt.Errorf("openapi: operation %q has no request body schema", op.ID)
	}
	if !hasType(body, "object") && len(body.Properties) == 0 {
		return schema.Definition{}, fmt.Errorf("openapi: operation %q request body is not an object", op.ID)
	}
	return schema.Definition{
		Name:   op.ID,
		Fields: convertProperties(body),
	}, nil
}

func requestSchema(ref *openapi3.RequestBodyRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	content := ref.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}
