package extract

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// ParseCount converts a human-readable count string to an exact integer:
// "1.2M" → 1200000, "12,345" → 12345, "３４" → 34, "1.5万" → 15000.
// Magnitude suffixes K/M/B and 万/億 are expanded against the decimal
// mantissa and the result floored. Returns false for anything that does
// not parse to a non-negative number; never defaults to zero.
func ParseCount(s string) (int64, bool) {
	s = foldWidth(s)
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.NewReplacer(",", "", " ", "", " ", "").Replace(s)
	if s == "" {
		return 0, false
	}

	mult := 1.0
	switch {
	case strings.HasSuffix(s, "K"):
		mult, s = 1e3, strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		mult, s = 1e6, strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "B"):
		mult, s = 1e9, strings.TrimSuffix(s, "B")
	case strings.HasSuffix(s, "万"):
		mult, s = 1e4, strings.TrimSuffix(s, "万")
	case strings.HasSuffix(s, "億"):
		mult, s = 1e8, strings.TrimSuffix(s, "億")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f * mult), true
}

// foldWidth maps runes to their canonical width: full-width ASCII
// narrows (３４ → 34, ： → :) and halfwidth katakana widens (ｺﾒﾝﾄ →
// コメント), so the locale-aware patterns only need ASCII digit classes
// and regular kana literals. Narrowing everything would instead mangle
// the kana the Japanese patterns are written in.
func foldWidth(s string) string {
	return width.Fold.String(s)
}
