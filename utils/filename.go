// utils/filename.go - Upload filename handling
package utils

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
)

var unsafeFilenameChars = regexp.MustCompile(`[\x00-\x1f*?"<>|:]+`)

// SanitizeFilename strips path separators and characters that are unsafe in
// storage keys, keeping the rest of the original name intact.
func SanitizeFilename(name string) string {
	// Normalize Windows separators, then drop any directory component.
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, ". ")

	if name == "" || name == "/" {
		return "file"
	}
	return name
}

// StorageKey derives the object key for an upload. The millisecond prefix
// keeps same-named files from colliding within a bucket.
func StorageKey(originalName string) string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), SanitizeFilename(originalName))
}

// KeyFromURL recovers the storage key from a persisted public URL.
func KeyFromURL(fileURL string) string {
	trimmed := strings.TrimSuffix(fileURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
