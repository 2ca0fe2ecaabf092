// Package jptext provides the half-width/full-width numeral conversions,
// whitespace handling and numeric-aware ordering that Japanese legal
// document text requires. All functions are pure.
package jptext

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FullWidthSpace is the U+3000 ideographic space used as the blank
// placeholder glyph on printed forms.
const FullWidthSpace = "　"

const fullWidthOffset = 0xFEE0

// ToHalfWidth maps full-width digits ０-９ to ASCII 0-9. Any other rune
// passes through unchanged.
func ToHalfWidth(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '０' && r <= '９' {
			r -= fullWidthOffset
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToFullWidthDigits maps ASCII digits 0-9 to their full-width forms.
// Legal filings are printed with full-width numerals throughout.
func ToFullWidthDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			r += fullWidthOffset
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isSpaceRune covers ASCII whitespace, the ideographic space, NBSP and
// the unicode space variants that paste their way into form fields.
func isSpaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	case '\u00a0', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200b'
}

// StripAllWhitespace removes every whitespace variant from s. Used to
// decide whether a field is effectively empty before rendering.
func StripAllWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if isSpaceRune(r) {
			return -1
		}
		return r
	}, s)
}

// IsBlank reports whether s contains nothing but whitespace.
func IsBlank(s string) bool {
	return StripAllWhitespace(s) == ""
}

// OrBlankPlaceholder returns s, or the full-width space placeholder when
// s is empty, so printed lines keep their column alignment.
func OrBlankPlaceholder(s string) string {
	if s == "" {
		return FullWidthSpace
	}
	return s
}

var digitRun = regexp.MustCompile(`\d+`)

// numericKey extracts the half-width-normalized digit runs of s as an
// integer tuple. "２番10" yields [2 10].
func numericKey(s string) []int {
	matches := digitRun.FindAllString(ToHalfWidth(s), -1)
	nums := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}

var (
	collatorOnce sync.Once
	collator     *collate.Collator
)

func jaCollator() *collate.Collator {
	collatorOnce.Do(func() {
		collator = collate.New(language.Japanese)
	})
	return collator
}

// NaturalLess orders strings the way a clerk orders house and lot
// numbers: digit runs compare numerically ("2番" before "10番"), ties
// fall back to Japanese collation, and blank keys sort last.
func NaturalLess(a, b string) bool {
	if a == "" || b == "" {
		return a != "" // blank sorts last
	}
	na, nb := numericKey(a), numericKey(b)
	for i := 0; i < len(na) || i < len(nb); i++ {
		if i >= len(na) {
			return true
		}
		if i >= len(nb) {
			return false
		}
		if na[i] != nb[i] {
			return na[i] < nb[i]
		}
	}
	return jaCollator().CompareString(a, b) < 0
}

// SortByNatural returns a copy of list ordered by NaturalLess over the
// key extracted from each element. The input is never mutated; the sort
// is stable.
func SortByNatural[T any](list []T, key func(T) string) []T {
	out := make([]T, len(list))
	copy(out, list)
	// stable insertion sort; the lists here are a handful of buildings
	// or parcels
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && NaturalLess(key(out[j]), key(out[j-1])); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

var slashShare = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)$`)

// FormatShare renders an ownership share for a signer line. "1/2"
// becomes 持分２分の１; an empty share renders the blank infill form;
// anything else is passed through with a 持分 prefix.
func FormatShare(share string) string {
	raw := strings.TrimSpace(share)
	if raw == "" {
		return "持分" + FullWidthSpace + FullWidthSpace + "分の" + FullWidthSpace + FullWidthSpace
	}
	if m := slashShare.FindStringSubmatch(ToHalfWidth(raw)); m != nil {
		return "持分" + ToFullWidthDigits(m[2]) + "分の" + ToFullWidthDigits(m[1])
	}
	if strings.HasPrefix(raw, "持分") {
		return raw
	}
	return "持分" + raw
}
