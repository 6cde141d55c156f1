package crawl

import (
	"fmt"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the 64-bit xxhash of content as 16 hex digits.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL for display to at most maxLen characters,
// keeping the tail where document ids live. Characters are counted as
// runes so percent-decoded Hangul is never split.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	n := utf8.RuneCountInString(url)
	if n <= maxLen {
		return url
	}
	runes := []rune(url)
	if maxLen < 4 {
		return string(runes[:maxLen])
	}
	return "..." + string(runes[n-maxLen+3:])
}

var byteUnits = []string{"KB", "MB", "GB"}

// FormatBytes formats a byte count using binary units.
func FormatBytes(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	v := float64(bytes) / 1024
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", v, byteUnits[unit])
}

// FormatTokens formats an approximate token count, rounding to thousands
// from 1000 up.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}
