package render

import (
	"context"
	"errors"

	"github.com/goliatone/go-formkit/pkg/forms"
)

// ErrNilForm is returned when Render is called without a form.
var ErrNilForm = errors.New("render: form is required")

// Renderer converts a bound or unbound form into a complete document
// (typically an HTML <form> element).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form *forms.Form, options RenderOptions) ([]byte, error)
}
