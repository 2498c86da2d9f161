package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxEmailLength = 254

var emailRgx = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+\\/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// NotBlank returns true if a string has at least one non-space character.
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MinRunes returns true if value has at least n runes
func MinRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) >= n
}

// RunesBetween returns true if value has between lo and hi runes, inclusive
func RunesBetween(value string, lo, hi int) bool {
	n := utf8.RuneCountInString(value)
	return n >= lo && n <= hi
}

func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// In returns true if value is one of list.
func In[T comparable](value T, list ...T) bool {
	for i := range list {
		if value == list[i] {
			return true
		}
	}
	return false
}

func IsEmail(value string) bool {
	return len(value) <= maxEmailLength && emailRgx.MatchString(value)
}
