package render

import (
	"fmt"
	"reflect"
	"strings"
)

// TemplateI18nConfig configures the helpers returned by TemplateI18nFuncs.
type TemplateI18nConfig struct {
	// LocaleKey is looked up when a helper receives a map or struct instead
	// of a locale string. Defaults to "locale".
	LocaleKey string
	// FuncName names the translate helper. Defaults to "translate".
	FuncName string
	// OnMissing decides the output for keys the translator cannot resolve.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns template helpers backed by t:
//
//	translate(localeSrc, key, ...args) string
//	current_locale(localeSrc) string
//
// localeSrc is a locale string, or a map or struct holding one under
// cfg.LocaleKey. The template renderer installs these whenever
// RenderOptions carries a Translator.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	h := templateI18n{
		t:         t,
		localeKey: firstNonEmpty(cfg.LocaleKey, "locale"),
		onMissing: cfg.OnMissing,
	}
	if h.onMissing == nil {
		h.onMissing = missingTranslationDefault
	}
	return map[string]any{
		firstNonEmpty(cfg.FuncName, "translate"): h.translate,
		"current_locale":                         h.locale,
	}
}

type templateI18n struct {
	t         Translator
	localeKey string
	onMissing MissingTranslationHandler
}

func (h templateI18n) translate(localeSrc any, key string, args ...any) string {
	if key = strings.TrimSpace(key); key == "" {
		return ""
	}
	locale := h.locale(localeSrc)
	if h.t == nil {
		return h.onMissing(locale, key, args, ErrMissingTranslator)
	}
	msg, err := h.t.Translate(locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return h.onMissing(locale, key, args, err)
	}
	return msg
}

func (h templateI18n) locale(src any) string {
	switch v := src.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]string:
		return v[h.localeKey]
	case map[string]any:
		if raw, ok := v[h.localeKey]; ok && raw != nil {
			return strings.TrimSpace(fmt.Sprint(raw))
		}
		return ""
	}

	rv := reflect.Indirect(reflect.ValueOf(src))
	var found reflect.Value
	switch rv.Kind() {
	case reflect.Struct:
		found = rv.FieldByName(h.localeKey)
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			found = rv.MapIndex(reflect.ValueOf(h.localeKey).Convert(rv.Type().Key()))
		}
	}
	if found.IsValid() && found.Kind() == reflect.String {
		return found.String()
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
