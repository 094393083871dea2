package deps

import (
	"fmt"
	"os"
)

// Header is the sentinel first line of every declaration file.
const Header = "#DEPENDENCIES"

// HeaderCheck is the outcome of validating a declaration file header.
type HeaderCheck struct {
	// Valid reports whether the file may be read as a declaration file.
	Valid bool

	// Overridden reports that the header did not match and the file was
	// accepted only because header checks are disabled. Callers should
	// warn the user.
	Overridden bool

	// Line is the decoded first line that was consumed.
	Line string
}

// CheckHeader reads exactly one decoded line from r and compares it to
// [Header].
//
// The line is consumed in every case. When ignoreHeader accepts a file whose
// first line is not the sentinel, that line is still not available as a
// record: the first line of such a file is never a dependency.
func CheckHeader(r *Reader, ignoreHeader bool) HeaderCheck {
	line, _ := r.ReadLine()
	check := HeaderCheck{Valid: line == Header, Line: line}
	if !check.Valid && ignoreHeader {
		check.Valid = true
		check.Overridden = true
	}
	return check
}

// ValidateFile opens path and checks its header.
func ValidateFile(path string, ignoreHeader bool) (HeaderCheck, error) {
	f, err := os.Open(path)
	if err != nil {
		return HeaderCheck{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return CheckHeader(NewReader(f), ignoreHeader), nil
}
