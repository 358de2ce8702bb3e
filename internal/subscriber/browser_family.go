package subscriber

import (
	"regexp"
	"strings"
)

const unknownBrowser = "unknown"

var browserFamilyRegex = regexp.MustCompile(`(?i)(firefox|msie|chrome|safari|trident)`)

// BrowserFamily returns the lowercased first agent family token found in ua.
func BrowserFamily(ua string) string {
	match := browserFamilyRegex.FindString(ua)
	if match == "" {
		return unknownBrowser
	}
	return strings.ToLower(match)
}
