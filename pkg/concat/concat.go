// Package concat joins strings end to end.
// It is pure Go with no logging or I/O so it can be reused by the gNMI
// service, the command-line wrapper and tests alike.
package concat

import "strings"

// Concatenate returns first immediately followed by second.
func Concatenate(first, second string) string {
	return first + second
}

// ConcatenateWith joins two strings with a separator.
func ConcatenateWith(first, sep, second string) string {
	return first + sep + second
}

// ConcatenateAll joins parts in order using a single allocation.
func ConcatenateAll(parts ...string) string {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	if n == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(n)
	for _, p := range parts {
		b.WriteString(p)
	}
	return b.String()
}
