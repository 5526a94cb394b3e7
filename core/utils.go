package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// InsertString appends s to ss if not already present, preserving order.
// The second return value reports whether ss changed.
func InsertString(ss []string, s string) ([]string, bool) {
	if ContainsString(ss, s) {
		return ss, false
	}
	return append(ss, s), true
}

// RemoveString removes the first occurrence of s from ss, preserving order.
// The second return value reports whether ss changed.
func RemoveString(ss []string, s string) ([]string, bool) {
	for i, v := range ss {
		if v == s {
			return append(ss[:i], ss[i+1:]...), true
		}
	}
	return ss, false
}

func ContainsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
