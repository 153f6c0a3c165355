package observability

import "strings"

// sanitizeString strips control characters and caps length so header-derived
// values cannot inject log lines.
func sanitizeString(value string, limit int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, value)
	if limit > 0 && len(cleaned) > limit {
		cleaned = cleaned[:limit]
	}
	return cleaned
}

// SanitizeRoute bounds route patterns for log fields.
func SanitizeRoute(route string) string {
	if route == "" {
		return "/"
	}
	return sanitizeString(route, 180)
}

// SanitizeMethod bounds HTTP method names for log fields.
func SanitizeMethod(method string) string {
	return sanitizeString(method, 10)
}

// SanitizeVendorID bounds vendor identifiers before they reach logs.
func SanitizeVendorID(id string) string {
	return sanitizeString(id, 64)
}
