package openapi

import "path/filepath"

// Source identifies where a document is read from.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind selects how the Loader reads a Source.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type source struct {
	kind SourceKind
	ref  string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.ref }
func (s source) String() string   { return string(s.kind) + ":" + s.ref }

// SourceFromFile reads the document from a path on disk.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, ref: filepath.Clean(path)}
}

// SourceFromFS reads the document from the Loader's fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, ref: name}
}

// SourceFromURL fetches the document over HTTP. The URL is checked when the
// document is loaded.
func SourceFromURL(raw string) Source {
	return source{kind: SourceKindURL, ref: raw}
}
