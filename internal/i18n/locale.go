// Package i18n provides locale resolution and message translation.
// Two locales are supported: Simplified Chinese (zh_CN, the default) and
// English (en).
package i18n

// Locale identifies a supported display language.
type Locale string

// Supported locales.
const (
	LocaleZhCN Locale = "zh_CN"
	LocaleEn   Locale = "en"
)

// DefaultLocale is used when no preference can be resolved.
const DefaultLocale = LocaleZhCN

// ParseLocale validates a raw locale value.
// Returns the parsed locale and true, or "" and false for anything outside
// the supported set.
func ParseLocale(raw string) (Locale, bool) {
	switch Locale(raw) {
	case LocaleZhCN, LocaleEn:
		return Locale(raw), true
	}
	return "", false
}

// String returns the locale identifier.
func (l Locale) String() string {
	return string(l)
}
