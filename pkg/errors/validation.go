package errors

import (
	"strings"
	"unicode"
)

// ValidateDeclarationFilename validates the declaration filename for safety.
// It ensures the filename is a simple basename without path components,
// because it is joined onto every library directory during a scan.
func ValidateDeclarationFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidConfig, "declaration filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidConfig, "declaration filename cannot contain path separators: %q", filename)
	}

	if filename == "." || filename == ".." {
		return New(ErrCodeInvalidConfig, "declaration filename cannot be %q", filename)
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "declaration filename contains invalid control characters")
		}
	}

	return nil
}

// ValidateLibraryDir validates the configured library directory.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateLibraryDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidConfig, "library directory cannot be empty")
	}

	const maxPathLength = 4096
	if len(dir) > maxPathLength {
		return New(ErrCodeInvalidConfig, "library directory too long (max %d characters)", maxPathLength)
	}

	for _, r := range dir {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "library directory contains invalid characters")
		}
	}

	return nil
}

// ValidateSourceURL validates a source location from a declaration file
// before it is handed to git.
//
// Validation rules:
//   - No empty locations
//   - No leading "-", which git would parse as an option
//   - No control characters or null bytes
func ValidateSourceURL(url string) error {
	if url == "" {
		return New(ErrCodeInvalidSourceURL, "source location cannot be empty")
	}

	if strings.HasPrefix(url, "-") {
		return New(ErrCodeInvalidSourceURL, "source location cannot start with '-': %q", url)
	}

	for _, r := range url {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSourceURL, "source location contains invalid control characters: %q", url)
		}
	}

	return nil
}

// ValidateLibraryName validates a derived library name before it is used
// as a clone destination below the library root.
//
// Names come from untrusted declaration files, so the rules reject anything
// that could land outside the root:
//   - No empty names
//   - No control characters or null bytes
//   - No "." or ".." path components
//   - No absolute paths
func ValidateLibraryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLibraryName, "library name cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLibraryName, "library name contains invalid control characters: %q", name)
		}
	}

	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, "\\") {
		return New(ErrCodeInvalidLibraryName, "library name must be relative: %q", name)
	}

	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == "." || part == ".." {
			return New(ErrCodeInvalidLibraryName, "library name cannot contain path traversal sequences: %q", name)
		}
	}

	return nil
}
