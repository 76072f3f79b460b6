package core

import (
	"strconv"
	"strings"
	"unicode"
)

const openLibraryIDPrefix = "OL"

// NormalizeISBN strips everything but digits, so "978-0-14-143951-8" becomes "9780141439518".
func NormalizeISBN(raw string) (ISBNString, error) {
	isbn := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, raw)

	if isbn == "" {
		return "", ErrInvalidISBN
	}

	return isbn, nil
}

// CanonicalISBN is NormalizeISBN for command and query builders: raw comes back unchanged when it has no digits.
func CanonicalISBN(raw string) ISBNString {
	if isbn, err := NormalizeISBN(raw); err == nil {
		return isbn
	}

	return raw
}

// ValidateOpenLibraryID checks the "OL" prefix that author, edition and work ids carry.
func ValidateOpenLibraryID(id string) error {
	if !strings.HasPrefix(id, openLibraryIDPrefix) || len(id) == len(openLibraryIDPrefix) {
		return ErrInvalidOpenLibraryID
	}

	return nil
}

// NormalizeAccessionCode parses a positive integer and returns its canonical decimal form.
func NormalizeAccessionCode(raw string) (AccessionCodeString, error) {
	trimmed := strings.TrimFunc(raw, unicode.IsSpace)

	code, err := strconv.Atoi(trimmed)
	if err != nil || code <= 0 {
		return "", ErrInvalidAccessionCode
	}

	return strconv.Itoa(code), nil
}

func accessionCodeLess(a, b AccessionCodeString) int {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)

	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}

	return ai - bi
}
