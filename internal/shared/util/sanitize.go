package util

import (
	"errors"
	"strings"
)

var errInvalidFileName = errors.New("invalid file name")

// SanitizeFileName flattens path separators out of an uploaded file name and
// rejects traversal patterns so it is safe to use as a storage key segment.
func SanitizeFileName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.Contains(trimmed, "..") {
		return "", errInvalidFileName
	}
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		default:
			return r
		}
	}, trimmed)
	return clean, nil
}
