// Package media collects the stylesheets and scripts declared by widgets and
// forms so they can be rendered once in a page head.
package media

import (
	"fmt"
	"html"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Media types understood by Only.
const (
	TypeCSS = "css"
	TypeJS  = "js"
)

// Media holds stylesheet paths grouped by medium ("screen", "print", "all")
// and script paths in declaration order.
type Media struct {
	CSS map[string][]string `json:"css,omitempty" yaml:"css,omitempty"`
	JS  []string            `json:"js,omitempty" yaml:"js,omitempty"`
}

// New builds a Media value from scripts; stylesheets are added via AddCSS.
func New(js ...string) Media {
	var m Media
	m.AddJS(js...)
	return m
}

// AddJS appends script paths, skipping duplicates.
func (m *Media) AddJS(paths ...string) {
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" || contains(m.JS, path) {
			continue
		}
		m.JS = append(m.JS, path)
	}
}

// AddCSS appends stylesheet paths for medium, skipping duplicates.
func (m *Media) AddCSS(medium string, paths ...string) {
	medium = strings.TrimSpace(medium)
	if medium == "" {
		medium = "all"
	}
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if m.CSS == nil {
			m.CSS = make(map[string][]string)
		}
		if contains(m.CSS[medium], path) {
			continue
		}
		m.CSS[medium] = append(m.CSS[medium], path)
	}
}

// Merge returns a new Media combining m followed by other.
func (m Media) Merge(other Media) Media {
	var out Media
	for _, src := range []Media{m, other} {
		for _, medium := range src.media() {
			out.AddCSS(medium, src.CSS[medium]...)
		}
		out.AddJS(src.JS...)
	}
	return out
}

// Only returns the subset of m for a single media type.
func (m Media) Only(kind string) Media {
	var out Media
	switch kind {
	case TypeCSS:
		for _, medium := range m.media() {
			out.AddCSS(medium, m.CSS[medium]...)
		}
	case TypeJS:
		out.AddJS(m.JS...)
	}
	return out
}

// Empty reports whether no assets are declared.
func (m Media) Empty() bool {
	return len(m.CSS) == 0 && len(m.JS) == 0
}

// Resolve rewrites asset paths through the theme's asset resolver. Paths that
// resolve to an empty string are kept as-is.
func (m Media) Resolve(cfg *theme.RendererConfig) Media {
	if cfg == nil || cfg.AssetURL == nil {
		return m
	}
	resolve := func(path string) string {
		if url := cfg.AssetURL(path); url != "" {
			return url
		}
		return path
	}
	var out Media
	for _, medium := range m.media() {
		for _, path := range m.CSS[medium] {
			out.AddCSS(medium, resolve(path))
		}
	}
	for _, path := range m.JS {
		out.AddJS(resolve(path))
	}
	return out
}

// Render emits link tags (media sorted by name) followed by script tags.
func (m Media) Render() string {
	var lines []string
	if css := m.RenderCSS(); css != "" {
		lines = append(lines, css)
	}
	if js := m.RenderJS(); js != "" {
		lines = append(lines, js)
	}
	return strings.Join(lines, "\n")
}

// RenderCSS emits one link tag per stylesheet.
func (m Media) RenderCSS() string {
	var lines []string
	for _, medium := range m.media() {
		for _, path := range m.CSS[medium] {
			lines = append(lines, fmt.Sprintf(
				`<link href="%s" type="text/css" media="%s" rel="stylesheet" />`,
				html.EscapeString(path), html.EscapeString(medium),
			))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderJS emits one script tag per script.
func (m Media) RenderJS() string {
	lines := make([]string, 0, len(m.JS))
	for _, path := range m.JS {
		lines = append(lines, fmt.Sprintf(
			`<script type="text/javascript" src="%s"></script>`,
			html.EscapeString(path),
		))
	}
	return strings.Join(lines, "\n")
}

func (m Media) String() string {
	return m.Render()
}

func (m Media) media() []string {
	names := make([]string, 0, len(m.CSS))
	for name := range m.CSS {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
