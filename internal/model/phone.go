package model

import "strings"

// NormalizePhone strips everything that is not a digit. An empty result
// means the order carries no usable phone.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
