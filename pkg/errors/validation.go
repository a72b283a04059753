package errors

import (
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name before it is placed into a
// registry URL. It rejects names that could escape the intended path:
//   - No empty names
//   - No control characters or null bytes
//   - No path traversal sequences (.., //, backslash)
//   - Maximum length of 256 characters
//
// Registry-specific naming rules are left to the registries themselves; a
// syntactically odd but safe name simply comes back as not found.
func ValidatePackageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateManifestFilename validates a manifest filename found while
// scanning. It must be a plain, non-hidden basename.
func ValidateManifestFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be a hidden file")
	}

	return nil
}

// ValidateURL validates a registry base URL from configuration.
// It ensures the URL has an http or https scheme and no trailing slash,
// since clients append absolute paths to it.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidConfig, "URL must use http or https scheme: %q", rawURL)
	}

	if strings.HasSuffix(rawURL, "/") {
		return New(ErrCodeInvalidConfig, "URL must not end with a slash: %q", rawURL)
	}

	return nil
}
