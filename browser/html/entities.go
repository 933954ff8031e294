package html

import (
	"strconv"
	"strings"
)

// namedEntities covers the handful of entities markup in the wild actually
// relies on; an unrecognized named entity passes through unchanged rather
// than being dropped, matching permissive browser behavior.
var namedEntities = map[string]rune{
	"amp":     '&',
	"lt":      '<',
	"gt":      '>',
	"quot":    '"',
	"apos":    '\'',
	"nbsp":    ' ',
	"copy":    '©',
	"reg":     '®',
	"mdash":   '—',
	"ndash":   '–',
	"hellip":  '…',
	"rsquo":   '’',
	"lsquo":   '‘',
	"rdquo":   '”',
	"ldquo":   '“',
	"trade":   '™',
}

// decodeEntities decodes named (&amp;), decimal (&#169;), and hex
// (&#xA9;) character references. Never panics on malformed input:
// unterminated or unrecognized references pass through verbatim.
func decodeEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '&' {
			b.WriteByte(s[i])
			continue
		}
		semi := strings.IndexByte(s[i:], ';')
		if semi < 0 || semi > 32 {
			b.WriteByte(s[i])
			continue
		}
		ref := s[i+1 : i+semi]
		if r, ok := decodeOneEntity(ref); ok {
			b.WriteRune(r)
			i += semi
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func decodeOneEntity(ref string) (rune, bool) {
	if ref == "" {
		return 0, false
	}
	if ref[0] == '#' {
		num := ref[1:]
		base := 10
		if len(num) > 0 && (num[0] == 'x' || num[0] == 'X') {
			base = 16
			num = num[1:]
		}
		n, err := strconv.ParseInt(num, base, 32)
		if err != nil || n < 0 || n > 0x10FFFF {
			return 0, false
		}
		return rune(n), true
	}
	r, ok := namedEntities[ref]
	return r, ok
}
