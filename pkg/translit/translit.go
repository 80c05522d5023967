package translit

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// DownloadName returns an ASCII-safe approximation of a user-supplied filename
// for clients that cannot handle non-ASCII Content-Disposition values. The
// exact original name travels alongside it in the RFC 5987 filename* parameter,
// so this only has to be best-effort.
func DownloadName(original string) string {
	if original == "" {
		return "file"
	}

	ascii := unidecode.Unidecode(original)

	// Quotes and control characters would break the quoted-string header form.
	ascii = strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\':
			return '_'
		case r < 0x20 || r == 0x7f:
			return -1
		default:
			return r
		}
	}, ascii)

	ascii = strings.TrimSpace(ascii)
	if ascii == "" {
		return "file"
	}
	return ascii
}
