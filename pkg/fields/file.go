package fields

import (
	"mime/multipart"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Message keys used by file fields.
const (
	MessageMissing = "missing"
	MessageEmpty   = "empty"
)

var fileMessages = map[string]string{
	MessageInvalid:   "No file was submitted. Check the encoding type on the form.",
	MessageMissing:   "No file was submitted.",
	MessageEmpty:     "The submitted file is empty.",
	MessageMaxLength: "Ensure this filename has at most %d characters (it has %d).",
}

// File cleans an uploaded *multipart.FileHeader. When nothing is uploaded
// the initial value is kept.
type File struct {
	Base
	MaxLength  int
	AllowEmpty bool
}

func NewFile(opts ...Option) *File {
	cfg := newConfig(opts)
	return &File{
		Base:      newBase(cfg, fileMessages, widgets.NewFileInput(nil)),
		MaxLength: cfg.maxLength,
	}
}

// CleanFile cleans data, falling back to initial when data is empty.
func (f *File) CleanFile(data, initial any) (any, error) {
	if IsEmpty(data) && !IsEmpty(initial) {
		return initial, nil
	}
	return f.Clean(data)
}

func (f *File) Clean(value any) (any, error) {
	if IsEmpty(value) {
		if f.required {
			return nil, f.fail(MessageRequired)
		}
		return nil, nil
	}

	header, ok := value.(*multipart.FileHeader)
	if !ok || header == nil {
		return nil, f.fail(MessageInvalid)
	}
	if header.Filename == "" {
		return nil, f.fail(MessageInvalid)
	}
	if length := utf8.RuneCountInString(header.Filename); f.MaxLength >= 0 && length > f.MaxLength {
		return nil, f.fail(MessageMaxLength, f.MaxLength, length)
	}
	if header.Size == 0 && !f.AllowEmpty {
		return nil, f.fail(MessageEmpty)
	}
	if err := f.validate(header); err != nil {
		return nil, err
	}
	return header, nil
}

// BoundData keeps the initial file when nothing new was uploaded.
func (f *File) BoundData(data, initial any) any {
	if IsEmpty(data) {
		return initial
	}
	return data
}
