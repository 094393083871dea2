package deps

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// allowedTail lists the characters a source location may end with before
// its last path segment is used as a directory name.
const allowedTail = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789.-_~!$&'()*+,;=:@"

// Library is a record mapped onto its directory below a library root.
type Library struct {
	Name   string `json:"name" yaml:"name"`
	Path   string `json:"path" yaml:"path"`
	Record Record `json:"record" yaml:"record"`
}

// LibraryName derives the directory name for rec.
//
// The name is the last path segment of the URL followed by "-" and the ref.
// Before the segment is taken, a trailing "#fragment" and then a trailing
// "?query" are cut at their last occurrence, and one trailing character
// outside [allowedTail] is dropped. A ".git" suffix is kept, so
// "https://example.com/org/repo.git" at "main" becomes "repo.git-main".
func LibraryName(rec Record) string {
	url := rec.URL
	if i := strings.LastIndexByte(url, '#'); i >= 0 {
		url = url[:i]
	}
	if i := strings.LastIndexByte(url, '?'); i >= 0 {
		url = url[:i]
	}
	if r, size := utf8.DecodeLastRuneInString(url); size > 0 && !strings.ContainsRune(allowedTail, r) {
		url = url[:len(url)-size]
	}
	url = url[strings.LastIndexByte(url, '/')+1:]
	return url + "-" + rec.Ref
}

// NewLibrary maps rec onto its directory below root.
// The same record and root always produce the same Library.
func NewLibrary(root string, rec Record) Library {
	name := LibraryName(rec)
	return Library{
		Name:   name,
		Path:   filepath.Join(root, filepath.FromSlash(name)),
		Record: rec,
	}
}
