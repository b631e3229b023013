// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slug derives ASCII URL slugs from film subtitles and titles.

Catalogue titles are mostly Japanese while subtitles carry the romanized or
English name, so [From] walks its candidates in order and keeps the first one
that survives ASCII folding:

	From("Kiki's Delivery Service", "魔女の宅急便") == "kikis-delivery-service"
	From("", "魔女の宅急便") == ""
*/
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Apostrophes join the word they split ("Howl's" becomes "howls") and an
// ampersand is spelled out.
var punctuation = strings.NewReplacer(
	"'", "",
	"’", "",
	"&", " and ",
)

// Letters that NFKD does not decompose into an ASCII base.
var ligatures = strings.NewReplacer(
	"æ", "ae", "Æ", "ae",
	"œ", "oe", "Œ", "oe",
	"ø", "o", "Ø", "o",
	"ß", "ss",
)

// From returns the slug of the first candidate that yields a non-empty one,
// or "" when none does.
func From(candidates ...string) string {
	for _, candidate := range candidates {
		if slug := fold(candidate); slug != "" {
			return slug
		}
	}
	return ""
}

// fold strips accents and folds full-width forms to ASCII, then joins the
// lowercase letter and digit runs with single hyphens.
func fold(s string) string {
	s = ligatures.Replace(punctuation.Replace(s))

	stripped, _, err := transform.String(transform.Chain(norm.NFKD, transform.RemoveFunc(isMark)), s)
	if err != nil {
		return ""
	}

	var builder strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(stripped) {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			pendingHyphen = builder.Len() > 0
			continue
		}
		if pendingHyphen {
			builder.WriteByte('-')
			pendingHyphen = false
		}
		builder.WriteRune(r)
	}

	return builder.String()
}

func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
