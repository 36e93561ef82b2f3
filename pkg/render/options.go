package render

import (
	theme "github.com/goliatone/go-theme"
)

// DefaultSubmitLabel is used when RenderOptions.SubmitLabel is empty.
const DefaultSubmitLabel = "Submit"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form declaration.
type RenderOptions struct {
	// Action is the form's action URL. Empty omits the attribute.
	Action string
	// Method defaults to POST. Renderers translate PATCH/PUT/DELETE into a
	// POST submission plus a hidden _method input.
	Method string
	// SubmitLabel is the text of the submit button. SubmitKey, when set, is
	// looked up through Translator first.
	SubmitLabel string
	SubmitKey   string
	// HiddenFields are emitted after the form rows, sorted by name. Use the
	// CSRFToken, AuthToken and VersionField helpers to build them.
	HiddenFields map[string]string
	// Errors surfaces server-side validation feedback keyed by field path. It
	// is merged into the form's errors before rendering.
	Errors map[string][]string
	// Attrs are extra attributes for the <form> element.
	Attrs map[string]string
	// Theme carries resolved theme tokens. Tokens become CSS variables on the
	// form element and AssetURL rewrites media paths.
	Theme *theme.RendererConfig
	// IncludeMedia emits the form's stylesheets before and scripts after the
	// form element.
	IncludeMedia bool

	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}
