// Package slug turns list names into stable comparison keys.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases input and joins its letter and digit runs with single
// dashes. "Work Stuff", "work_stuff" and " work-stuff " all give "work-stuff".
func Make(input string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(input) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return sb.String()
}
