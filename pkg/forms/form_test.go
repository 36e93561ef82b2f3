package forms_test

import (
	"errors"
	"mime/multipart"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/fields"
	"github.com/goliatone/go-formkit/pkg/forms"
	"github.com/goliatone/go-formkit/pkg/media"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

func personDeclaration() forms.Declaration {
	return forms.Declare("person",
		forms.F("first_name", fields.NewChar()),
		forms.F("last_name", fields.NewChar()),
		forms.F("age", fields.NewInteger(fields.Optional())),
	)
}

func TestForm_UnboundNeverValidates(t *testing.T) {
	form := forms.New(personDeclaration())

	if form.IsBound() || form.IsValid() {
		t.Fatalf("unbound form must not be bound or valid")
	}
	if form.Errors().Len() != 0 {
		t.Fatalf("unbound form should have no errors, got %s", form.Errors().AsText())
	}
	if form.CleanedData() != nil {
		t.Fatalf("unbound form should have no cleaned data")
	}
}

func TestForm_EmptyDataBinds(t *testing.T) {
	form := forms.New(personDeclaration(), forms.WithData(url.Values{}))
	if !form.IsBound() {
		t.Fatalf("empty non-nil data should bind the form")
	}
	if form.IsValid() {
		t.Fatalf("required fields should fail")
	}
	if diff := cmp.Diff([]string{"first_name", "last_name"}, form.Errors().Keys()); diff != "" {
		t.Fatalf("error keys mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ValidCleanedData(t *testing.T) {
	form := forms.New(personDeclaration(), forms.WithData(url.Values{
		"first_name": {"John"},
		"last_name":  {"Lennon"},
		"age":        {"40"},
	}))

	if !form.IsValid() {
		t.Fatalf("expected valid form, errors: %s", form.Errors().AsText())
	}
	want := map[string]any{"first_name": "John", "last_name": "Lennon", "age": 40}
	if diff := cmp.Diff(want, form.CleanedData()); diff != "" {
		t.Fatalf("cleaned data mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ErrorsClearCleanedData(t *testing.T) {
	form := forms.New(personDeclaration(), forms.WithData(url.Values{
		"first_name": {"John"},
		"age":        {"forty"},
	}))

	if form.IsValid() {
		t.Fatalf("expected invalid form")
	}
	want := map[string][]string{
		"last_name": {"This field is required."},
		"age":       {"Enter a whole number."},
	}
	if diff := cmp.Diff(want, form.Errors().AsMap()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if form.CleanedData() != nil {
		t.Fatalf("any error should clear cleaned data")
	}
}

func TestForm_Prefix(t *testing.T) {
	form := forms.New(personDeclaration(),
		forms.WithPrefix("p1"),
		forms.WithData(url.Values{"p1-first_name": {"Ann"}, "p1-last_name": {"Lee"}, "first_name": {"ignored"}}),
	)

	if got := form.AddPrefix("age"); got != "p1-age" {
		t.Fatalf("unexpected prefixed name %q", got)
	}
	if got := form.AddInitialPrefix("age"); got != "initial-p1-age" {
		t.Fatalf("unexpected initial name %q", got)
	}
	if !form.IsValid() {
		t.Fatalf("expected valid form, errors: %s", form.Errors().AsText())
	}
	if got := form.CleanedData()["first_name"]; got != "Ann" {
		t.Fatalf("expected prefixed data, got %#v", got)
	}
	raw, err := form.RawValue("last_name")
	if err != nil || raw != "Lee" {
		t.Fatalf("raw value = %#v (%v)", raw, err)
	}
	if _, err := form.RawValue("missing"); !errors.Is(err, forms.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
}

func TestForm_FieldAndFormCleaners(t *testing.T) {
	decl := forms.Declare("signup",
		forms.F("username", fields.NewChar()),
		forms.F("password", fields.NewChar(fields.WithWidget(widgets.NewPasswordInput(nil, false)))),
		forms.F("confirm", fields.NewChar(fields.WithWidget(widgets.NewPasswordInput(nil, false)))),
	)
	upper := func(value any, _ map[string]any) (any, error) {
		return strings.ToUpper(value.(string)), nil
	}
	match := func(cleaned map[string]any) error {
		if cleaned["password"] != cleaned["confirm"] {
			return validation.NewError("mismatch", "Passwords do not match.")
		}
		return nil
	}

	valid := forms.New(decl,
		forms.WithFieldCleaner("username", upper),
		forms.WithCleaner(match),
		forms.WithData(url.Values{"username": {"ann"}, "password": {"s3cret"}, "confirm": {"s3cret"}}),
	)
	if !valid.IsValid() {
		t.Fatalf("expected valid form, errors: %s", valid.Errors().AsText())
	}
	if got := valid.CleanedData()["username"]; got != "ANN" {
		t.Fatalf("field cleaner result not stored, got %#v", got)
	}

	invalid := forms.New(decl,
		forms.WithCleaner(match),
		forms.WithData(url.Values{"username": {"ann"}, "password": {"a"}, "confirm": {"b"}}),
	)
	if invalid.IsValid() {
		t.Fatalf("expected form cleaner error")
	}
	if diff := cmp.Diff([]string{"Passwords do not match."}, invalid.NonFieldErrors().Messages()); diff != "" {
		t.Fatalf("non-field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_FieldCleanerSkippedOnFieldError(t *testing.T) {
	called := false
	form := forms.New(personDeclaration(),
		forms.WithFieldCleaner("first_name", func(value any, _ map[string]any) (any, error) {
			called = true
			return value, nil
		}),
		forms.WithFieldCleaner("last_name", func(any, map[string]any) (any, error) {
			return nil, validation.NewError("taken", "Name already taken.")
		}),
		forms.WithData(url.Values{"last_name": {"Lee"}}),
	)

	if diff := cmp.Diff([]string{"Name already taken."}, form.Errors().Get("last_name").Messages()); diff != "" {
		t.Fatalf("field cleaner error mismatch (-want +got):\n%s", diff)
	}
	if called {
		t.Fatalf("field cleaner must not run when the field failed")
	}
}

func TestForm_EmptyPermitted(t *testing.T) {
	form := forms.New(personDeclaration(), forms.WithEmptyPermitted(true), forms.WithData(url.Values{}))
	if !form.IsValid() {
		t.Fatalf("unchanged empty-permitted form should be valid: %s", form.Errors().AsText())
	}
	if diff := cmp.Diff(map[string]any{}, form.CleanedData()); diff != "" {
		t.Fatalf("expected empty cleaned data (-want +got):\n%s", diff)
	}

	changed := forms.New(personDeclaration(), forms.WithEmptyPermitted(true), forms.WithData(url.Values{"age": {"3"}}))
	if changed.IsValid() {
		t.Fatalf("changed empty-permitted form must run validation")
	}
}

func TestForm_ChangedData(t *testing.T) {
	form := forms.New(personDeclaration(),
		forms.WithInitial(map[string]any{"first_name": "Ann", "age": 30}),
		forms.WithData(url.Values{"first_name": {"Ann"}, "last_name": {"Lee"}, "age": {"30"}}),
	)
	if diff := cmp.Diff([]string{"last_name"}, form.ChangedData()); diff != "" {
		t.Fatalf("changed data mismatch (-want +got):\n%s", diff)
	}
	if !form.HasChanged() {
		t.Fatalf("expected HasChanged")
	}
}

func TestForm_ChangedDataUsesHiddenInitial(t *testing.T) {
	decl := forms.Declare("note",
		forms.F("body", fields.NewChar(fields.WithShowHiddenInitial(true), fields.WithInitial("server"))),
	)

	same := forms.New(decl, forms.WithData(url.Values{"body": {"draft"}, "initial-body": {"draft"}}))
	if same.HasChanged() {
		t.Fatalf("hidden initial equal to data should not be a change")
	}

	edited := forms.New(decl, forms.WithData(url.Values{"body": {"edited"}, "initial-body": {"draft"}}))
	if diff := cmp.Diff([]string{"body"}, edited.ChangedData()); diff != "" {
		t.Fatalf("changed data mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_DateHiddenInitialRoundTrip(t *testing.T) {
	day := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	decl := forms.Declare("event",
		forms.F("when", fields.NewDate(fields.WithInitial(day), fields.WithShowHiddenInitial(true))),
	)

	rendered := forms.New(decl).MustField("when").String()
	values := inputValues(rendered)
	want := map[string]string{"when": "2024-01-02", "initial-when": "2024-01-02"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("rendered values mismatch (-want +got):\n%s", diff)
	}

	data := url.Values{}
	for name, value := range values {
		data.Set(name, value)
	}
	resubmitted := forms.New(decl, forms.WithData(data))
	if changed := resubmitted.ChangedData(); len(changed) != 0 {
		t.Fatalf("untouched date reported as changed: %v", changed)
	}

	data.Set("when", "01/02/2024")
	if changed := forms.New(decl, forms.WithData(data)).ChangedData(); len(changed) != 0 {
		t.Fatalf("same date in another input layout reported as changed: %v", changed)
	}

	data.Set("when", "2024-01-03")
	if diff := cmp.Diff([]string{"when"}, forms.New(decl, forms.WithData(data)).ChangedData()); diff != "" {
		t.Fatalf("changed data mismatch (-want +got):\n%s", diff)
	}
}

// inputValues maps the name of every <input> in markup to its value.
func inputValues(markup string) map[string]string {
	attr := func(tag, key string) string {
		marker := key + `="`
		i := strings.Index(tag, marker)
		if i < 0 {
			return ""
		}
		rest := tag[i+len(marker):]
		return rest[:strings.Index(rest, `"`)]
	}
	out := map[string]string{}
	for _, chunk := range strings.Split(markup, "<input")[1:] {
		tag := chunk[:strings.Index(chunk, ">")]
		out[attr(tag, "name")] = attr(tag, "value")
	}
	return out
}

func TestForm_FileFieldKeepsInitial(t *testing.T) {
	decl := forms.Declare("upload",
		forms.F("title", fields.NewChar()),
		forms.F("doc", fields.NewFile()),
	)

	form := forms.New(decl,
		forms.WithData(url.Values{"title": {"Report"}}),
		forms.WithFiles(widgets.Files{}),
		forms.WithInitial(map[string]any{"doc": "existing.pdf"}),
	)
	if !form.IsMultipart() {
		t.Fatalf("file widget should make the form multipart")
	}
	if !form.IsValid() {
		t.Fatalf("expected valid form, errors: %s", form.Errors().AsText())
	}
	if got := form.CleanedData()["doc"]; got != "existing.pdf" {
		t.Fatalf("expected initial file, got %#v", got)
	}

	upload := &multipart.FileHeader{Filename: "new.pdf", Size: 10}
	replaced := forms.New(decl,
		forms.WithData(url.Values{"title": {"Report"}}),
		forms.WithFiles(widgets.Files{"doc": {upload}}),
	)
	if got := replaced.CleanedData()["doc"]; got != upload {
		t.Fatalf("expected uploaded file, got %#v", got)
	}
}

func TestForm_AddError(t *testing.T) {
	form := forms.New(personDeclaration(), forms.WithData(url.Values{
		"first_name": {"John"},
		"last_name":  {"Lennon"},
	}))
	if !form.IsValid() {
		t.Fatalf("expected valid form")
	}

	if err := form.AddError("first_name", validation.NewError("taken", "Already registered.")); err != nil {
		t.Fatalf("add error: %v", err)
	}
	if err := form.AddError("", errors.New("Service unavailable.")); err != nil {
		t.Fatalf("add non-field error: %v", err)
	}
	if err := form.AddError("nope", errors.New("x")); !errors.Is(err, forms.ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}

	if form.IsValid() {
		t.Fatalf("form with added errors must be invalid")
	}
	cleaned := form.CleanedData()
	if _, ok := cleaned["first_name"]; ok {
		t.Fatalf("field with added error should leave cleaned data")
	}
	if got := cleaned["last_name"]; got != "Lennon" {
		t.Fatalf("fields without added errors should stay cleaned, got %#v", got)
	}
	if diff := cmp.Diff([]string{"Service unavailable."}, form.NonFieldErrors().Messages()); diff != "" {
		t.Fatalf("non-field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_AddErrorPayload(t *testing.T) {
	form := forms.New(personDeclaration(),
		forms.WithPrefix("person"),
		forms.WithData(url.Values{"person-first_name": {"John"}, "person-last_name": {"Lennon"}}),
	)
	form.AddErrorPayload(map[string][]string{
		"/data/attributes/first_name": {"Rejected upstream.", " Rejected upstream. "},
		"person-last_name":            {"Too common."},
		"items[0].age":                {"Bad age."},
		"unknown.path":                {"Mystery failure."},
		"":                            {"Whole form failed."},
	})

	want := map[string][]string{
		"first_name":              {"Rejected upstream."},
		"last_name":               {"Too common."},
		"age":                     {"Bad age."},
		validation.NonFieldErrors: {"Whole form failed.", "Mystery failure."},
	}
	if diff := cmp.Diff(want, form.Errors().AsMap()); diff != "" {
		t.Fatalf("payload mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_MediaListsWidgetsFirst(t *testing.T) {
	picker := widgets.NewDateInput(nil, "")
	picker.SetMedia(media.New("picker.js"))

	decl := forms.Declare("event", forms.F("day", fields.NewDate(fields.WithWidget(picker))))
	decl.Media = media.New("form.js")

	form := forms.New(decl, forms.WithMedia(media.New("extra.js")))
	if diff := cmp.Diff([]string{"picker.js", "form.js", "extra.js"}, form.Media().JS); diff != "" {
		t.Fatalf("media mismatch (-want +got):\n%s", diff)
	}
}

func TestExtend(t *testing.T) {
	override := fields.NewChar(fields.WithLabel("Surname"))
	child := forms.Declare("employee",
		forms.F("last_name", override),
		forms.F("employee_id", fields.NewInteger()),
	)

	merged := forms.Extend(personDeclaration(), child)
	if diff := cmp.Diff([]string{"first_name", "last_name", "age", "employee_id"}, merged.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	got, ok := merged.Field("last_name")
	if !ok || got != fields.Field(override) {
		t.Fatalf("child field should replace parent field in place")
	}
	if merged.Name != "employee" {
		t.Fatalf("unexpected name %q", merged.Name)
	}
}

func TestPrettyName(t *testing.T) {
	cases := map[string]string{
		"first_name": "First name",
		"email":      "Email",
		"":           "",
		"émile":      "Émile",
	}
	for input, want := range cases {
		if got := forms.PrettyName(input); got != want {
			t.Fatalf("PrettyName(%q) = %q, want %q", input, got, want)
		}
	}
}
