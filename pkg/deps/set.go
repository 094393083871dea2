package deps

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitdeps/pkg/errors"
	"github.com/matzehuels/gitdeps/pkg/observability"
)

// Set is an insertion-ordered collection of distinct records.
//
// The first occurrence of a record fixes its position; later duplicates
// only add to its list of origins. The zero value is ready to use.
type Set struct {
	records []Record
	origins map[Record][]File
}

// Add inserts rec unless an equal record is already present and reports
// whether rec was new. The origin is recorded either way.
func (s *Set) Add(rec Record, origin File) bool {
	if s.origins == nil {
		s.origins = make(map[Record][]File)
	}
	prev, seen := s.origins[rec]
	s.origins[rec] = append(prev, origin)
	if seen {
		return false
	}
	s.records = append(s.records, rec)
	return true
}

// Contains reports whether an equal record is present.
func (s *Set) Contains(rec Record) bool {
	_, ok := s.origins[rec]
	return ok
}

// Len returns the number of distinct records.
func (s *Set) Len() int { return len(s.records) }

// Records returns the records in discovery order.
// The returned slice must not be modified.
func (s *Set) Records() []Record { return s.records }

// Origins returns every declaration file that listed rec, in reading order.
func (s *Set) Origins(rec Record) []File { return s.origins[rec] }

// Builder reads declaration files into a Set.
type Builder struct {
	// IgnoreHeader accepts files without the header sentinel.
	IgnoreHeader bool

	// Logger receives parse progress. Nil means log.Default().
	Logger *log.Logger
}

// Build reads every file in order and merges the records into one Set.
//
// Files that can no longer be opened or validated contribute no records.
// Records with an empty URL are dropped.
func (b *Builder) Build(ctx context.Context, files []File) *Set {
	logger := b.Logger
	if logger == nil {
		logger = log.Default()
	}

	set := &Set{}
	for _, f := range files {
		records, err := ReadFile(f.Path, b.IgnoreHeader)
		observability.Scan().OnDeclarationParsed(ctx, f.Path, len(records), err)
		if err != nil {
			logger.Warn("invalid dependency file", "path", f.Path, "err", err)
			continue
		}

		for _, rec := range records {
			if rec.URL == "" {
				logger.Debug("skipping record without source location", "path", f.Path, "ref", rec.Ref)
				continue
			}
			if !set.Add(rec, f) {
				logger.Debug("duplicate dependency", "url", rec.URL, "ref", rec.Ref, "path", f.Path)
			}
		}
	}
	return set
}

// ReadFile validates the header of the declaration file at path and parses
// every remaining line into records, in file order.
//
// Returns an [errors.ErrCodeInvalidDeclarationFile] error when the header
// check fails.
func ReadFile(path string, ignoreHeader bool) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, ignoreHeader)
}

// Read parses a declaration file from r. See [ReadFile].
func Read(r io.Reader, ignoreHeader bool) ([]Record, error) {
	lr := NewReader(r)
	if check := CheckHeader(lr, ignoreHeader); !check.Valid {
		return nil, errors.New(errors.ErrCodeInvalidDeclarationFile, "missing %s header", Header)
	}

	var records []Record
	for {
		line, err := lr.ReadLine()
		if err == io.EOF || (err == nil && line == "") {
			return records, nil
		}
		if err != nil {
			return records, fmt.Errorf("read declaration: %w", err)
		}
		records = append(records, ParseRecord(line))
	}
}
