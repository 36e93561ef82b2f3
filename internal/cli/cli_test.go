package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/internal/cli"
	"github.com/goliatone/go-formkit/pkg/prompt"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

const searchYAML = `
name: search
fields:
  - name: q
    type: char
    label: Query
`

const signupYAML = `
name: signup
fields:
  - name: name
    type: char
  - name: age
    type: integer
`

const bundleYAML = `
forms:
  - name: first
    fields:
      - {name: a}
  - name: second
    fields:
      - {name: b}
`

const ordersYAML = `
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

type result struct {
	Form        string              `json:"form"`
	Valid       bool                `json:"valid"`
	CleanedData map[string]any      `json:"cleaned_data"`
	Errors      map[string][]string `json:"errors"`
}

func writeDefinition(t *testing.T, name, data string) string {
	t.Helper()
	testsupport.MustParseDefinition(t, name, data)
	return writeFile(t, name, data)
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, opts []cli.Option, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmd(opts...)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(testsupport.Context())
	return stdout.String(), stderr.String(), err
}

func decodeResult(t *testing.T, out string) result {
	t.Helper()
	var res result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode result: %v\n%s", err, out)
	}
	return res
}

func TestRender_MatchesGolden(t *testing.T) {
	path := writeDefinition(t, "search.yaml", searchYAML)

	out, _, err := run(t, nil, "render", path, "--renderer", "p", "--method", "get")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	golden := filepath.Join("testdata", "search_p.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(out)) {
		return
	}
	testsupport.AssertMarkup(t, string(testsupport.MustReadGolden(t, golden)), out)
}

func TestRender_BoundShowsErrors(t *testing.T) {
	path := writeDefinition(t, "signup.yaml", signupYAML)

	out, _, err := run(t, nil, "render", path, "-r", "ul", "--data", "name=Ann&age=old")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<ul class="errorlist"><li>Enter a whole number.</li></ul>`,
		`value="Ann"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRender_WritesOutputFile(t *testing.T) {
	path := writeDefinition(t, "search.yaml", searchYAML)
	target := filepath.Join(t.TempDir(), "search.html")

	stdout, stderr, err := run(t, nil, "render", path, "-o", target)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if stdout != "" {
		t.Fatalf("expected nothing on stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "form written") {
		t.Fatalf("expected log line on stderr, got %q", stderr)
	}
	written, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(written), "<form") {
		t.Fatalf("unexpected output file:\n%s", written)
	}
}

func TestValidate_Valid(t *testing.T) {
	path := writeDefinition(t, "signup.yaml", signupYAML)

	out, _, err := run(t, nil, "validate", path, "--data", "name=Ann&age=30")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	res := decodeResult(t, out)
	if !res.Valid {
		t.Fatalf("expected valid result: %+v", res)
	}
	want := map[string]any{"name": "Ann", "age": float64(30)}
	if diff := cmp.Diff(want, res.CleanedData); diff != "" {
		t.Fatalf("cleaned data mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_InvalidReturnsErrInvalid(t *testing.T) {
	path := writeDefinition(t, "signup.yaml", signupYAML)

	out, _, err := run(t, nil, "validate", path, "--data", "name=&age=abc")
	if !errors.Is(err, cli.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	res := decodeResult(t, out)
	want := map[string][]string{
		"name": {"This field is required."},
		"age":  {"Enter a whole number."},
	}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_DataFileAndTextFormat(t *testing.T) {
	path := writeDefinition(t, "signup.yaml", signupYAML)
	data := writeFile(t, "data.yaml", "name: Ann\nage: 30\n")

	out, _, err := run(t, nil, "validate", path, "--data-file", data, "--data", "age=x", "-f", "text")
	if !errors.Is(err, cli.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	want := "signup: invalid\n  age: Enter a whole number.\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_TextFormatValid(t *testing.T) {
	path := writeDefinition(t, "signup.yaml", signupYAML)

	out, _, err := run(t, nil, "validate", path, "--data", "name=Ann&age=30", "-f", "text")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := "signup: valid\n  age: 30\n  name: Ann\nchanged: name, age\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Errors(t *testing.T) {
	signup := writeDefinition(t, "signup.yaml", signupYAML)
	if _, _, err := run(t, nil, "validate", signup); err == nil || !strings.Contains(err.Error(), "no data") {
		t.Fatalf("expected missing data error, got %v", err)
	}

	bundle := writeFile(t, "bundle.yaml", bundleYAML)
	_, _, err := run(t, nil, "validate", bundle, "--data", "a=1")
	if err == nil || !strings.Contains(err.Error(), "--form") {
		t.Fatalf("expected --form hint, got %v", err)
	}

	out, _, err := run(t, nil, "validate", bundle, "--form", "second", "--data", "b=1")
	if err != nil {
		t.Fatalf("validate second: %v", err)
	}
	if res := decodeResult(t, out); res.Form != "second" || !res.Valid {
		t.Fatalf("unexpected result: %+v", res)
	}
}

type scriptedDriver struct {
	answers []string
	infos   []string
	asked   []string
}

func (d *scriptedDriver) next() (string, error) {
	if len(d.answers) == 0 {
		return "", errors.New("no answer scripted")
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	return d.next()
}

func (d *scriptedDriver) Password(ctx context.Context, cfg prompt.InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return false, errors.New("unexpected confirm")
}

func (d *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	return -1, errors.New("unexpected select")
}

func (d *scriptedDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	return nil, errors.New("unexpected multiselect")
}

func (d *scriptedDriver) TextArea(context.Context, prompt.TextAreaConfig) (string, error) {
	return "", errors.New("unexpected textarea")
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestPrompt_FillsAndPrintsResult(t *testing.T) {
	path := writeDefinition(t, "signup.yaml", signupYAML)
	driver := &scriptedDriver{answers: []string{"Ann", "30"}}

	out, _, err := run(t, []cli.Option{cli.WithPromptDriver(driver)}, "prompt", path)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	res := decodeResult(t, out)
	if diff := cmp.Diff(map[string]any{"name": "Ann", "age": float64(30)}, res.CleanedData); diff != "" {
		t.Fatalf("cleaned data mismatch (-want +got):\n%s", diff)
	}

	decl := testsupport.MustBuild(t, "signup.yaml", signupYAML)
	if diff := cmp.Diff(len(decl.Names()), len(driver.asked)); diff != "" {
		t.Fatalf("expected one question per field (-want +got):\n%s", diff)
	}
}

func TestPrompt_GivesUp(t *testing.T) {
	path := writeDefinition(t, "signup.yaml", signupYAML)
	driver := &scriptedDriver{answers: []string{"", "1", ""}}

	out, _, err := run(t, []cli.Option{cli.WithPromptDriver(driver)},
		"prompt", path, "--attempts", "2")
	if !errors.Is(err, cli.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	res := decodeResult(t, out)
	if diff := cmp.Diff(map[string][]string{"name": {"This field is required."}}, res.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infos) == 0 {
		t.Fatalf("expected errors to be reported through the driver")
	}
}

func TestOpenAPI_ListAndConvert(t *testing.T) {
	path := writeFile(t, "orders.yaml", ordersYAML)

	out, _, err := run(t, nil, "openapi", path)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff("createOrder\tPOST /orders\n", out); diff != "" {
		t.Fatalf("listing mismatch (-want +got):\n%s", diff)
	}

	out, _, err = run(t, nil, "openapi", path, "createOrder")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	var def schema.Definition
	if err := yaml.Unmarshal([]byte(out), &def); err != nil {
		t.Fatalf("decode definition: %v\n%s", err, out)
	}
	var names []string
	for _, field := range def.Fields {
		names = append(names, field.Name)
	}
	if def.Name != "createOrder" {
		t.Fatalf("expected createOrder, got %q", def.Name)
	}
	if diff := cmp.Diff([]string{"quantity", "sku"}, names); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := run(t, nil, "openapi", path, "missing"); err == nil {
		t.Fatalf("expected unknown operation error")
	}
}
