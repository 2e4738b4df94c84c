package textutil

import (
	"strings"
	"unicode"
)

// fileNameReplacer normalizes filesystem-hostile characters in titles.
// Path separators and whitespace become underscores; punctuation that
// commonly appears in book titles is dropped outright.
var fileNameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "",
	".", "",
	",", "",
	"\"", "",
	"'", "",
	"(", "",
	")", "",
	"{", "",
	"}", "",
	"[", "",
	"]", "",
	"*", "",
	"?", "",
	"®", "",
	"™", "",
)

// SanitizeFileName reduces a title to a filesystem-safe string. The result
// contains no path separators, whitespace, or title punctuation, and is
// stable across invocations for the same input.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
	return fileNameReplacer.Replace(name)
}

// idTokenReplacer flattens identifier path segments into a single path
// component.
var idTokenReplacer = strings.NewReplacer(
	"/", "-",
	".", "-",
)

// IDToken converts a slash-delimited content identifier into a form that is
// safe to embed in a single filename component. Slashes and dots become
// hyphens.
func IDToken(value string) string {
	return idTokenReplacer.Replace(strings.TrimSpace(value))
}
