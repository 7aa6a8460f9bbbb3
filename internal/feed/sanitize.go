package feed

import (
	"strings"
	"unicode"
)

var umlauts = strings.NewReplacer(
	"Ä", "Ae",
	"Ö", "Oe",
	"Ü", "Ue",
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
)

// SanitizeKey turns a free-text label into a stable mapping key: umlauts
// become ASCII digraphs, everything outside [0-9A-Za-z_] is stripped. Case is
// preserved; idempotent.
func SanitizeKey(field string) string {
	field = umlauts.Replace(field)

	var b strings.Builder
	b.Grow(len(field))
	for _, r := range field {
		if r == '_' ||
			(r >= '0' && r <= '9') ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeAttributeKey sanitizes and lowercases. Custom-attribute keys are the
// only lowercased keys in the feed.
func SanitizeAttributeKey(field string) string {
	return strings.ToLower(SanitizeKey(field))
}

// CamelToSnake converts an attribute column name to the snake_case form used
// in translation field keys ("packUnit" -> "pack_unit").
func CamelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
