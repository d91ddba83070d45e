package quran

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tashkeel covers the Arabic diacritic marks stripped before comparison.
var tashkeel = map[rune]struct{}{
	'\u064b': {}, // fathatan
	'\u064c': {}, // dammatan
	'\u064d': {}, // kasratan
	'\u064e': {}, // fatha
	'\u064f': {}, // damma
	'\u0650': {}, // kasra
	'\u0651': {}, // shadda
	'\u0652': {}, // sukun
	'\u0653': {}, // maddah
	'\u0654': {}, // hamza above
	'\u0655': {}, // hamza below
	'\u0670': {}, // superscript alef
}

// letterFolds maps orthographic variants onto a single form so a recitation
// is not penalised for spelling differences the reciter cannot hear.
var letterFolds = strings.NewReplacer(
	"آ", "ا", // alef with madda -> alef
	"أ", "ا", // alef with hamza above -> alef
	"إ", "ا", // alef with hamza below -> alef
	"ٱ", "ا", // alef wasla -> alef
	"ة", "ه", // ta marbuta -> ha
	"ى", "ي", // alef maksura -> ya
)

// NormalizeArabic prepares Arabic text for word comparison: diacritics are
// removed, the text is NFKC-normalized, and common letter variants are
// folded. The alignment scorer itself does no normalization; callers that
// want diacritic-insensitive scoring run both texts through here first.
func NormalizeArabic(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if _, ok := tashkeel[r]; ok {
			continue
		}
		b.WriteRune(r)
	}
	folded := letterFolds.Replace(norm.NFKC.String(b.String()))
	return strings.TrimSpace(folded)
}
