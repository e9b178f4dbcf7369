// Package codec implements the reversible password obfuscation.
//
// The transform reverses the character order. It is publicly invertible and
// provides no confidentiality; do not use it to protect secrets.
package codec

import "unicode/utf8"

// Transform returns s with its runes in reverse order. Input that is not
// valid UTF-8 is returned unchanged, so Transform(Transform(s)) == s holds
// for every byte string.
func Transform(s string) string {
	if !utf8.ValidString(s) {
		return s
	}
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// Encode derives the obfuscated form of a password.
func Encode(password string) string {
	return Transform(password)
}

// Decode recovers a password from its obfuscated form.
func Decode(obfuscated string) string {
	return Transform(obfuscated)
}
