package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchKey normaliza un nombre de catálogo para búsqueda: minúsculas,
// sin acentos ni espacios repetidos ("Tornillería Única" -> "tornilleria unica").
func SearchKey(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	clean, _, err := transform.String(t, name)
	if err != nil {
		clean = name
	}
	return strings.Join(strings.Fields(strings.ToLower(clean)), " ")
}
