// Package thai normalizes Thai personal names for matching across data
// sources. The ECT results feed and the Vote62 registry print the same person
// differently: honorific and rank prefixes come and go, spacing varies, and
// some payloads mix full-width characters. Normalization makes the two
// spellings comparable without attempting transliteration.
package thai

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// honorifics are title and rank prefixes commonly attached to candidate
// names in official listings, longest first so compound ranks strip before
// their shorter forms.
var honorifics = []string{
	"พลตำรวจเอก",
	"พลตำรวจโท",
	"พลตำรวจตรี",
	"พล.ต.อ.",
	"พล.ต.ท.",
	"พล.ต.ต.",
	"พลเอก",
	"พลโท",
	"พลตรี",
	"พ.ต.อ.",
	"พ.ต.ท.",
	"พ.ต.ต.",
	"ร.ต.อ.",
	"ร.ต.ท.",
	"ร.ต.ต.",
	"นายแพทย์",
	"แพทย์หญิง",
	"นพ.",
	"พญ.",
	"ดร.",
	"นางสาว",
	"น.ส.",
	"นาง",
	"นาย",
	"ว่าที่ร้อยตรี",
	"ว่าที่ ร.ต.",
}

// Normalize canonicalizes a name: NFC composition, full-width folding,
// honorific stripping, and whitespace collapsing. Empty input stays empty.
func Normalize(name string) string {
	if name == "" {
		return ""
	}

	s := norm.NFC.String(name)
	s = width.Fold.String(s)
	s = strings.TrimSpace(s)

	for _, prefix := range honorifics {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			s = strings.TrimSpace(rest)
			break
		}
	}

	return strings.Join(strings.Fields(s), " ")
}

// SameName reports whether two names plausibly refer to the same person
// after normalization: exact match, containment either way, or a shared
// final token (Thai surnames come last). Empty names never match.
func SameName(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}

	fa := strings.Fields(na)
	fb := strings.Fields(nb)
	if len(fa) > 0 && len(fb) > 0 {
		return fa[len(fa)-1] == fb[len(fb)-1]
	}
	return false
}
