// Package parsing handles URL, filename, and list file parsing.
package parsing

import "strings"

// ExtractVideoID derives the video identifier from a share URL.
//
// The identifier is the final path segment after stripping any query string.
// Malformed input yields a best-effort result rather than an error.
func ExtractVideoID(rawURL string) string {
	if i := strings.Index(rawURL, "?"); i != -1 {
		rawURL = rawURL[:i]
	}

	if i := strings.LastIndex(rawURL, "/"); i != -1 {
		return rawURL[i+1:]
	}
	return rawURL
}
