// Package router resolves a language pair to the dictionary's URL path segment.
package router

import (
	"fmt"
	"sort"
)

// hubLanguage is the language every pair on the German site goes through.
// The path segment always names it first, whichever way the lookup runs.
const hubLanguage = "de"

// Path segment names by ISO 639-1 code, as used in the site's URLs.
var languageNames = map[string]string{
	"de": "deutsch",
	"en": "englisch",
	"fr": "franzoesisch",
	"es": "spanisch",
	"it": "italienisch",
	"pt": "portugiesisch",
	"nl": "niederlaendisch",
	"pl": "polnisch",
	"sv": "schwedisch",
	"da": "daenisch",
	"fi": "finnisch",
	"el": "griechisch",
	"cs": "tschechisch",
	"ro": "rumaenisch",
	"hu": "ungarisch",
	"sk": "slowakisch",
	"sl": "slowenisch",
	"bg": "bulgarisch",
	"et": "estnisch",
	"lv": "lettisch",
	"lt": "litauisch",
	"mt": "maltesisch",
	"ru": "russisch",
	"ja": "japanisch",
	"zh": "chinesisch",
}

// IsValidPair checks if the site has a dictionary for the pair.
func IsValidPair(source, target string) bool {
	if source == target {
		return false
	}
	if _, ok := languageNames[source]; !ok {
		return false
	}
	if _, ok := languageNames[target]; !ok {
		return false
	}
	return source == hubLanguage || target == hubLanguage
}

// SupportedLanguages returns all language codes, sorted.
func SupportedLanguages() []string {
	langs := make([]string, 0, len(languageNames))
	for lang := range languageNames {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Resolve returns the lang-pair path segment for a lookup from source to
// target, e.g. "deutsch-englisch" for de→en and for en→de.
func Resolve(source, target string) (string, error) {
	if !IsValidPair(source, target) {
		return "", fmt.Errorf("router: unsupported language pair: %s-%s", source, target)
	}

	other := target
	if target == hubLanguage {
		other = source
	}

	return languageNames[hubLanguage] + "-" + languageNames[other], nil
}
