package extensions

func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	return s[:maxLen-3] + "..."
}

// TruncateStringStart keeps the end of s, which is the useful part of a URL.
func TruncateStringStart(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	return "..." + s[len(s)-(maxLen-3):]
}
