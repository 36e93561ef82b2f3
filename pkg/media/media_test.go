package media_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/media"
)

func TestMedia_MergeKeepsOrderAndDropsDuplicates(t *testing.T) {
	base := media.New("base.js")
	base.AddCSS("screen", "base.css")

	child := media.New("test.js", "base.js")
	child.AddCSS("print", "print.css")
	child.AddCSS("screen", "base.css", "child.css")

	merged := base.Merge(child)

	want := media.Media{
		CSS: map[string][]string{
			"print":  {"print.css"},
			"screen": {"base.css", "child.css"},
		},
		JS: []string{"base.js", "test.js"},
	}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged media mismatch (-want +got):\n%s", diff)
	}
}

func TestMedia_Render(t *testing.T) {
	m := media.New("demo.js")
	m.AddCSS("screen", "demo.css")
	m.AddCSS("print", "print.css")

	want := `<link href="print.css" type="text/css" media="print" rel="stylesheet" />
<link href="demo.css" type="text/css" media="screen" rel="stylesheet" />
<script type="text/javascript" src="demo.js"></script>`
	if got := m.Render(); got != want {
		t.Fatalf("render mismatch\nwant:\n%s\n got:\n%s", want, got)
	}

	if got := m.Only(media.TypeJS).Render(); got != `<script type="text/javascript" src="demo.js"></script>` {
		t.Fatalf("unexpected js-only render: %s", got)
	}
	if !(media.Media{}).Empty() {
		t.Fatalf("expected zero media to be empty")
	}
}

func TestMedia_ResolveThroughTheme(t *testing.T) {
	m := media.New("widgets.js", "keep.js")
	cfg := &theme.RendererConfig{
		Theme: "acme",
		AssetURL: func(key string) string {
			if key == "keep.js" {
				return ""
			}
			return "/themes/acme/" + key
		},
	}

	resolved := m.Resolve(cfg)
	if diff := cmp.Diff([]string{"/themes/acme/widgets.js", "keep.js"}, resolved.JS); diff != "" {
		t.Fatalf("resolved js mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(m, m.Resolve(nil)); diff != "" {
		t.Fatalf("nil theme should be a no-op (-want +got):\n%s", diff)
	}
}
