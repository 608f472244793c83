package viewdex

import "strings"

// Path helpers for the resource tree. All of these are total functions:
// malformed input degrades to returning the input unchanged, never an error.

// IsDirectory reports whether a resource path denotes a directory. The
// traversal contract marks directories with a trailing slash.
func IsDirectory(path string) bool {
	return strings.HasSuffix(path, "/")
}

// StripPrefixPath removes prefix from the start of path if present.
func StripPrefixPath(prefix, path string) string {
	if strings.HasPrefix(path, prefix) {
		return path[len(prefix):]
	}
	return path
}

// StripExtension removes the trailing .ext segment from path, if any.
func StripExtension(path string) string {
	if dot := extensionIndex(path); dot >= 0 {
		return path[:dot]
	}
	return path
}

// Extension returns the trailing .ext segment of path including the dot,
// or the empty string when the last segment has no extension.
func Extension(path string) string {
	if dot := extensionIndex(path); dot >= 0 {
		return path[dot:]
	}
	return ""
}

// StartsWithOneOf reports whether s starts with any of the given prefixes.
func StartsWithOneOf(s string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// extensionIndex locates the dot introducing the extension of the final
// path segment, or -1 when there is none. A dot inside an earlier segment
// does not count as an extension.
func extensionIndex(path string) int {
	dot := strings.LastIndex(path, ".")
	if dot <= 0 {
		return -1
	}
	if slash := strings.LastIndex(path, "/"); dot < slash {
		return -1
	}
	return dot
}
