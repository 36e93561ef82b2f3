package orchestrator_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/schema"
)

const contactYAML = `
forms:
  - name: base
    fields:
      - name: email
        type: email
  - name: contact
    extends: base
    prefix: c
    fields:
      - name: subject
      - name: message
        widget: textarea
        required: false
`

const ordersDoc = `
openapi: 3.0.3
info: {title: Orders, version: "1.0"}
paths:
  /orders:
    post:
      operationId: createOrder
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [sku]
              properties:
                sku: {type: string}
                quantity: {type: integer, minimum: 1}
      responses:
        "201": {description: created}
`

type stubSelector struct {
	selection *theme.Selection
	calls     [][2]string
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, [2]string{name, variant})
	if s.selection == nil {
		return nil, errors.New("unknown theme")
	}
	return s.selection, nil
}

func contactStore(t *testing.T) *schema.Store {
	t.Helper()
	store, err := schema.LoadFS(fstest.MapFS{"forms.yaml": {Data: []byte(contactYAML)}})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return store
}

func TestForm_StoredDefinitionWithExtendsAndPrefix(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithStore(contactStore(t)))

	form, err := gen.Form(context.Background(), orchestrator.Request{
		Name: "contact",
		Data: url.Values{"c-email": {"a@b.io"}, "c-subject": {"Hi"}},
	})
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if !form.IsValid() {
		t.Fatalf("expected valid form, got %s", form.Errors().AsText())
	}
	want := map[string]any{"email": "a@b.io", "subject": "Hi", "message": ""}
	if diff := cmp.Diff(want, form.CleanedData()); diff != "" {
		t.Fatalf("cleaned data mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"email", "subject", "message"}, form.Declaration().Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_RendersWithDefaultRenderer(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithStore(contactStore(t)))

	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Name:    "contact",
		Prefix:  "x",
		Initial: map[string]any{"subject": "Hello"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`<form method="post">`,
		`<table>`,
		`<input type="text" name="x-subject" value="Hello" id="id_x-subject" />`,
		`<textarea name="x-message"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestGenerate_ThemeSelection(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{
		Theme:    "acme",
		Manifest: &theme.Manifest{Name: "acme", Tokens: map[string]string{"brand": "#111"}},
	}}
	gen := orchestrator.New(
		orchestrator.WithStore(contactStore(t)),
		orchestrator.WithThemeSelector(selector, "acme", "light"),
		orchestrator.WithDefaultRenderer("p"),
	)

	out, err := gen.Generate(context.Background(), orchestrator.Request{Name: "base", Variant: "dark"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(string(out), `<form data-theme="acme" method="post" style="--brand: #111">`) {
		t.Fatalf("theme not applied:\n%s", out)
	}
	if diff := cmp.Diff([][2]string{{"acme", "dark"}}, selector.calls); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_OpenAPIDocument(t *testing.T) {
	loader := openapi.NewLoader(openapi.WithFileSystem(fstest.MapFS{"orders.yaml": {Data: []byte(ordersDoc)}}))
	gen := orchestrator.New(orchestrator.WithLoader(loader))

	form, err := gen.Form(context.Background(), orchestrator.Request{
		Source:      openapi.SourceFromFS("orders.yaml"),
		OperationID: "createOrder",
		Data:        url.Values{"sku": {"A-1"}, "quantity": {"0"}},
	})
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if form.IsValid() {
		t.Fatalf("quantity below minimum should fail")
	}
	if !form.Errors().Has("quantity") {
		t.Fatalf("expected quantity error, got %s", form.Errors().AsText())
	}

	_, err = gen.Form(context.Background(), orchestrator.Request{
		Source:      openapi.SourceFromFS("orders.yaml"),
		OperationID: "missing",
	})
	if !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestDefinition_Errors(t *testing.T) {
	gen := orchestrator.New()
	ctx := context.Background()

	if _, err := gen.Definition(ctx, orchestrator.Request{}); !errors.Is(err, orchestrator.ErrNoDefinition) {
		t.Fatalf("expected ErrNoDefinition, got %v", err)
	}
	if _, err := gen.Definition(ctx, orchestrator.Request{Name: "contact"}); !errors.Is(err, orchestrator.ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}

	withStore := orchestrator.New(orchestrator.WithStore(contactStore(t)))
	if _, err := withStore.Definition(ctx, orchestrator.Request{Name: "nope"}); !errors.Is(err, schema.ErrDefinitionNotFound) {
		t.Fatalf("expected ErrDefinitionNotFound, got %v", err)
	}
	if _, err := withStore.Generate(ctx, orchestrator.Request{Name: "base", Renderer: "pdf"}); err == nil {
		t.Fatalf("expected unknown renderer error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := withStore.Form(cancelled, orchestrator.Request{Name: "base"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestForm_InlineDefinitionAndTransformer(t *testing.T) {
	preset, err := orchestrator.NewPresetTransformer([]byte(`
prefix: t
remove: [internal]
fields:
  title:
    label: Headline
    rename: headline
    required: false
`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	gen := orchestrator.New(orchestrator.WithTransformer(preset))

	def := &schema.Definition{Name: "post", Fields: []schema.FieldDefinition{
		{Name: "title"},
		{Name: "internal"},
	}}
	form, err := gen.Form(context.Background(), orchestrator.Request{Definition: def, Data: url.Values{}})
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if !form.IsValid() {
		t.Fatalf("expected optional headline to validate, got %s", form.Errors().AsText())
	}
	bound := form.MustField("headline")
	if bound.Label() != "Headline" || bound.HTMLName() != "t-headline" {
		t.Fatalf("patch not applied: label=%q name=%q", bound.Label(), bound.HTMLName())
	}
	if len(def.Fields) != 2 || def.Fields[0].Name != "title" {
		t.Fatalf("transformer mutated the caller's definition: %+v", def.Fields)
	}
}
