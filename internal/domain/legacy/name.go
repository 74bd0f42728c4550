package legacy

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// NameFormat normalizes a person name the way the external provider stores
// it: trimmed, transliterated to ASCII, upper-cased.
func NameFormat(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	// composed first, so "e" + U+0301 transliterates like "é"
	return strings.ToUpper(unidecode.Unidecode(norm.NFC.String(name)))
}
