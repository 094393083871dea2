package deps

import "strings"

// Record is one dependency parsed from a declaration file.
//
// Two records are equal when both fields match exactly, so Record is used
// directly as a map key for deduplication.
type Record struct {
	URL string `json:"url" yaml:"url"` // Repository source location
	Ref string `json:"ref" yaml:"ref"` // Branch or tag; may be empty
}

// String returns the record as it would appear in a declaration file.
func (r Record) String() string {
	if r.Ref == "" {
		return r.URL
	}
	return r.URL + " " + r.Ref
}

// ParseRecord turns one decoded line into a Record.
//
// The scanner has two phases. Characters up to the first run of spaces or
// tabs form the URL; every later non-blank character is appended to the ref,
// so "url a b" yields ref "ab". Leading blanks are skipped without leaving
// the first phase. ParseRecord never fails: malformed lines produce records
// with an empty ref or an empty URL.
func ParseRecord(line string) Record {
	var url, ref strings.Builder
	inRef := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == ' ' || c == '\t' {
			if url.Len() > 0 {
				inRef = true
			}
			continue
		}
		if inRef {
			ref.WriteByte(c)
		} else {
			url.WriteByte(c)
		}
	}
	return Record{URL: url.String(), Ref: ref.String()}
}
