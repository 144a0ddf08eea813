package validation

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"citysuggest/internal/qgram"
)

// MaxTermLength is the longest search term, in runes, that is answered.
const MaxTermLength = 100

// MaxLabelLength is the longest selection label, in runes, that is accepted.
const MaxLabelLength = 200

// NormalizeTerm brings a raw search term into the form used by the index:
// NFC composed, non-word runes removed, lower-cased.
func NormalizeTerm(raw string) string {
	return qgram.Normalize(norm.NFC.String(raw))
}

// ValidateTerm checks that a normalized term can be answered given the
// minimum trigger length.
func ValidateTerm(term string, minLength int) bool {
	n := utf8.RuneCountInString(term)
	if n == 0 || n < minLength {
		return false
	}
	return n <= MaxTermLength
}

// ValidateLabel checks a selection label before it is turned into a map search.
func ValidateLabel(label string) bool {
	return utf8.ValidString(label) && utf8.RuneCountInString(label) <= MaxLabelLength
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	// Parse the URL
	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	// Check scheme - only allow http and https
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	// Ensure host is present
	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
