package utils

import "strings"

// StringOrDefault returns *p, or def when p is nil.
func StringOrDefault(p *string, def string) string {
	if p != nil {
		return strings.TrimSpace(*p)
	}
	return def
}

// ContainsFold reports whether any of the fields contains substr, ignoring case.
func ContainsFold(substr string, fields ...string) bool {
	substr = strings.ToLower(substr)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), substr) {
			return true
		}
	}
	return false
}
