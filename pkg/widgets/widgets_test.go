package widgets_test

import (
	"mime/multipart"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

func TestAttrs_FlattenOrdering(t *testing.T) {
	attrs := widgets.Attrs{"id": "id_a", "value": "x", "class": "c", "type": "text", "name": "a"}
	want := ` type="text" name="a" value="x" class="c" id="id_a"`
	if got := attrs.Flatten(); got != want {
		t.Fatalf("flatten mismatch\nwant: %s\n got: %s", want, got)
	}
	if got := (widgets.Attrs{"title": "<b>"}).Flatten(); got != ` title="&lt;b&gt;"` {
		t.Fatalf("expected escaped attribute, got %s", got)
	}
	if got := widgets.Attrs(nil).Flatten(); got != "" {
		t.Fatalf("expected empty flatten, got %q", got)
	}
}

func TestInputs_Render(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "text with value and id",
			got:  widgets.NewTextInput(nil).Render("email", "a@b.c", widgets.Attrs{"id": "id_email"}),
			want: `<input type="text" name="email" value="a@b.c" id="id_email" />`,
		},
		{
			name: "text without value",
			got:  widgets.NewTextInput(widgets.Attrs{"maxlength": "10"}).Render("email", nil, nil),
			want: `<input type="text" name="email" maxlength="10" />`,
		},
		{
			name: "password hides value",
			got:  widgets.NewPasswordInput(nil, false).Render("pw", "secret", nil),
			want: `<input type="password" name="pw" />`,
		},
		{
			name: "password echoes value on request",
			got:  widgets.NewPasswordInput(nil, true).Render("pw", "secret", nil),
			want: `<input type="password" name="pw" value="secret" />`,
		},
		{
			name: "hidden",
			got:  widgets.NewHiddenInput(nil).Render("token", 42, nil),
			want: `<input type="hidden" name="token" value="42" />`,
		},
		{
			name: "multiple hidden",
			got:  widgets.NewMultipleHiddenInput(nil, nil).Render("ids", []string{"1", "2"}, nil),
			want: "<input type=\"hidden\" name=\"ids\" value=\"1\" />\n<input type=\"hidden\" name=\"ids\" value=\"2\" />",
		},
		{
			name: "file never echoes",
			got:  widgets.NewFileInput(nil).Render("upload", "report.pdf", nil),
			want: `<input type="file" name="upload" />`,
		},
		{
			name: "textarea defaults and escaping",
			got:  widgets.NewTextarea(nil).Render("bio", "a<b", nil),
			want: `<textarea name="bio" cols="40" rows="10">a&lt;b</textarea>`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("render mismatch\nwant: %s\n got: %s", tc.want, tc.got)
			}
		})
	}
}

func TestInputs_RenderDoesNotMutateAttrs(t *testing.T) {
	w := widgets.NewTextInput(widgets.Attrs{"class": "wide"})
	_ = w.Render("a", "b", widgets.Attrs{"id": "id_a"})
	if diff := cmp.Diff(widgets.Attrs{"class": "wide"}, w.Attrs()); diff != "" {
		t.Fatalf("widget attrs mutated (-want +got):\n%s", diff)
	}
}

func TestCheckboxInput(t *testing.T) {
	w := widgets.NewCheckboxInput(nil, nil)

	if got, want := w.Render("agree", true, nil), `<input type="checkbox" name="agree" checked="checked" />`; got != want {
		t.Fatalf("checked render mismatch\nwant: %s\n got: %s", want, got)
	}
	if got, want := w.Render("agree", "on", nil), `<input type="checkbox" name="agree" value="on" checked="checked" />`; got != want {
		t.Fatalf("valued render mismatch\nwant: %s\n got: %s", want, got)
	}
	if got, want := w.Render("agree", false, nil), `<input type="checkbox" name="agree" />`; got != want {
		t.Fatalf("unchecked render mismatch\nwant: %s\n got: %s", want, got)
	}

	data := url.Values{"on": {"on"}, "yes": {"true"}, "no": {"False"}}
	if got := w.ValueFromData(data, nil, "missing"); got != false {
		t.Fatalf("missing checkbox should be false, got %#v", got)
	}
	if got := w.ValueFromData(data, nil, "yes"); got != true {
		t.Fatalf("expected true, got %#v", got)
	}
	if got := w.ValueFromData(data, nil, "no"); got != false {
		t.Fatalf("expected false, got %#v", got)
	}
	if got := w.ValueFromData(data, nil, "on"); got != "on" {
		t.Fatalf("expected raw value, got %#v", got)
	}

	if w.HasChanged(false, "0") {
		t.Fatalf("false vs \"0\" should not be a change")
	}
	if !w.HasChanged(nil, "on") {
		t.Fatalf("nil vs on should be a change")
	}
}

func TestSelect_Render(t *testing.T) {
	choices := []widgets.Choice{
		{Value: "J", Label: "John"},
		widgets.Group("Others", widgets.Pairs("P", "Paul", "G", "George")...),
	}
	w := widgets.NewSelect(nil, choices)

	want := `<select name="beatle" id="id_beatle">
<option value="J">John</option>
<optgroup label="Others">
<option value="P" selected="selected">Paul</option>
<option value="G">George</option>
</optgroup>
<option value="R">Ringo</option>
</select>`
	got := w.RenderChoices("beatle", "P", widgets.Attrs{"id": "id_beatle"}, widgets.Pairs("R", "Ringo"))
	if got != want {
		t.Fatalf("select mismatch\nwant:\n%s\n got:\n%s", want, got)
	}

	if diff := cmp.Diff(choices, w.Choices()); diff != "" {
		t.Fatalf("render-time choices leaked into widget (-want +got):\n%s", diff)
	}
}

func TestSelectMultiple(t *testing.T) {
	w := widgets.NewSelectMultiple(nil, widgets.Pairs("a", "A", "b", "B", "c", "C"))

	want := `<select multiple="multiple" name="letters" id="id_letters">
<option value="a" selected="selected">A</option>
<option value="b">B</option>
<option value="c" selected="selected">C</option>
</select>`
	if got := w.Render("letters", []string{"a", "c"}, widgets.Attrs{"id": "id_letters"}); got != want {
		t.Fatalf("select multiple mismatch\nwant:\n%s\n got:\n%s", want, got)
	}

	data := url.Values{"letters": {"a", "b"}}
	if diff := cmp.Diff([]string{"a", "b"}, w.ValueFromData(data, nil, "letters")); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if w.ValueFromData(data, nil, "missing") != nil {
		t.Fatalf("expected nil for missing key")
	}

	if w.HasChanged([]string{"a", "b"}, []string{"b", "a"}) {
		t.Fatalf("order should not matter")
	}
	if w.HasChanged(nil, []string{}) {
		t.Fatalf("nil and empty should be equal")
	}
	if !w.HasChanged([]any{"1"}, []string{"2"}) {
		t.Fatalf("expected change")
	}
}

func TestRadioSelect(t *testing.T) {
	w := widgets.NewRadioSelect(nil, widgets.Pairs("J", "John", "P", "Paul"))

	want := `<ul>
<li><label for="id_beatle_0"><input type="radio" name="beatle" value="J" checked="checked" id="id_beatle_0" /> John</label></li>
<li><label for="id_beatle_1"><input type="radio" name="beatle" value="P" id="id_beatle_1" /> Paul</label></li>
</ul>`
	if got := w.Render("beatle", "J", widgets.Attrs{"id": "id_beatle"}); got != want {
		t.Fatalf("radio mismatch\nwant:\n%s\n got:\n%s", want, got)
	}

	renderer := w.Renderer("beatle", nil, nil, widgets.Pairs("G", "George"))
	if renderer.Len() != 3 {
		t.Fatalf("expected 3 inputs, got %d", renderer.Len())
	}
	third, ok := renderer.At(2)
	if !ok {
		t.Fatalf("expected third input")
	}
	if got, want := third.String(), `<label><input type="radio" name="beatle" value="G" /> George</label>`; got != want {
		t.Fatalf("radio input mismatch\nwant: %s\n got: %s", want, got)
	}
	if _, ok := renderer.At(3); ok {
		t.Fatalf("expected out of range")
	}
	if got := w.IDForLabel("id_beatle"); got != "id_beatle_0" {
		t.Fatalf("unexpected label id %q", got)
	}
	if got := w.IDForLabel(""); got != "" {
		t.Fatalf("expected empty label id, got %q", got)
	}
}

func TestCheckboxSelectMultiple(t *testing.T) {
	w := widgets.NewCheckboxSelectMultiple(nil, widgets.Pairs("a", "A", "b", "B"))

	want := `<ul>
<li><label for="id_tags_0"><input type="checkbox" name="tags" value="a" checked="checked" id="id_tags_0" /> A</label></li>
<li><label for="id_tags_1"><input type="checkbox" name="tags" value="b" id="id_tags_1" /> B</label></li>
</ul>`
	if got := w.Render("tags", []string{"a"}, widgets.Attrs{"id": "id_tags"}); got != want {
		t.Fatalf("checkbox multiple mismatch\nwant:\n%s\n got:\n%s", want, got)
	}
}

func TestNullBooleanSelect(t *testing.T) {
	w := widgets.NewNullBooleanSelect(nil)
	want := `<select name="nb">
<option value="1">Unknown</option>
<option value="2" selected="selected">Yes</option>
<option value="3">No</option>
</select>`
	if got := w.Render("nb", true, nil); got != want {
		t.Fatalf("null boolean mismatch\nwant:\n%s\n got:\n%s", want, got)
	}

	data := url.Values{"yes": {"2"}, "no": {"3"}, "unknown": {"1"}}
	if got := w.ValueFromData(data, nil, "yes"); got != true {
		t.Fatalf("expected true, got %#v", got)
	}
	if got := w.ValueFromData(data, nil, "no"); got != false {
		t.Fatalf("expected false, got %#v", got)
	}
	if got := w.ValueFromData(data, nil, "unknown"); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
	if w.HasChanged(nil, "1") {
		t.Fatalf("unknown should equal nil")
	}
}

func TestFileInput_ValueFromData(t *testing.T) {
	header := &multipart.FileHeader{Filename: "a.txt", Size: 3}
	files := widgets.Files{"upload": {header}}
	w := widgets.NewFileInput(nil)

	if got := w.ValueFromData(nil, files, "upload"); got != header {
		t.Fatalf("expected file header, got %#v", got)
	}
	if got := w.ValueFromData(nil, files, "missing"); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
	if !w.NeedsMultipart() {
		t.Fatalf("file input needs multipart")
	}
}

func TestDateInput(t *testing.T) {
	w := widgets.NewDateInput(nil, "")
	day := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)

	if got, want := w.Render("born", day, nil), `<input type="text" name="born" value="2024-03-09" />`; got != want {
		t.Fatalf("date render mismatch\nwant: %s\n got: %s", want, got)
	}
	if got, want := w.Render("born", time.Time{}, nil), `<input type="text" name="born" />`; got != want {
		t.Fatalf("zero date render mismatch\nwant: %s\n got: %s", want, got)
	}
	if w.HasChanged(day, "2024-03-09") {
		t.Fatalf("formatted date should match submitted text")
	}
}

func TestDateHiddenInput(t *testing.T) {
	hidden := widgets.NewDateHiddenInput(nil, "")
	day := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	if got, want := hidden.Render("initial-when", day, nil), `<input type="hidden" name="initial-when" value="2024-01-02" />`; got != want {
		t.Fatalf("hidden date render mismatch\nwant: %s\n got: %s", want, got)
	}
	if !hidden.IsHidden() {
		t.Fatalf("hidden date input should report hidden")
	}
	if widgets.NewDateInput(nil, "").IsHidden() {
		t.Fatalf("text date input should not report hidden")
	}
}

func TestDateInput_HasChangedParsesText(t *testing.T) {
	w := widgets.NewDateInput(nil, "")
	w.InputFormats = []string{"01/02/2006"}

	if w.HasChanged("2024-01-02", "01/02/2024") {
		t.Fatalf("same date in different layouts should not be a change")
	}
	if w.HasChanged(" 2024-01-02 ", time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("text initial should match the time value")
	}
	if !w.HasChanged("2024-01-02", "2024-01-03") {
		t.Fatalf("different dates should be a change")
	}
	if !w.HasChanged("2024-01-02", "soon") {
		t.Fatalf("unparseable data should be a change")
	}
}
