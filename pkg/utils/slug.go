package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeHandle lowercases the input, strips diacritics and drops anything
// that is not an ASCII letter or digit. "Ana Mi!a" becomes "anamia".
func NormalizeHandle(input string) string {
	decomposed := norm.NFD.String(strings.ToLower(input))

	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			// combining mark left over from decomposition
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// SuggestUsername builds a starting handle from the identity provider's
// display name, falling back to the local part of the email. Computed once at
// profile creation.
func SuggestUsername(displayName, email string) string {
	base := NormalizeHandle(displayName)
	if base == "" {
		local, _, _ := strings.Cut(email, "@")
		base = NormalizeHandle(local)
	}
	if base == "" {
		base = "user"
	}

	return fmt.Sprintf("%s%d", base, 1000+rand.Intn(9000))
}
