// Package persistence implements the whole-document persistence gateway of the
// registry. A DocumentStore keeps exactly one JSON document; the Gateway turns
// that document into records and back, and never lets a storage failure
// escape as an error.
//
// Concrete stores live in the sub-packages:
//   - file: a JSON file rewritten via temp file + rename (default)
//   - boltdb: a single key in a bbolt bucket
//   - postgres: a single row in the student_documents table
//   - redis: a single hash key
package persistence

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrMalformedDocument is returned when the document is not a JSON array of records.
	ErrMalformedDocument = errors.New("persistence: malformed document")

	// ErrDigestMismatch is returned when a stored digest does not match the body.
	ErrDigestMismatch = errors.New("persistence: document digest mismatch")
)

// ══════════════════════════════════════════════════════════════════════════════
// CODEC
// ══════════════════════════════════════════════════════════════════════════════

// IsBlank reports whether a document has no content worth decoding.
func IsBlank(doc []byte) bool {
	return len(bytes.TrimSpace(doc)) == 0
}

// Encode serializes the complete record sequence as one indented JSON array.
func Encode(students []*student.Student) ([]byte, error) {
	out := make([]*student.Student, 0, len(students))
	for _, s := range students {
		if s == nil {
			return nil, fmt.Errorf("%w: nil record", ErrMalformedDocument)
		}
		c := s.Clone()
		if c.Marks == nil {
			c.Marks = []int{}
		}
		out = append(out, c)
	}
	return json.MarshalIndent(out, "", "  ")
}

// Decode parses a JSON array of records. A JSON null decodes to no records.
func Decode(doc []byte) ([]*student.Student, error) {
	var students []*student.Student
	if err := json.Unmarshal(doc, &students); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	for i, s := range students {
		if s == nil {
			return nil, fmt.Errorf("%w: element %d is null", ErrMalformedDocument, i)
		}
		if s.Marks == nil {
			s.Marks = []int{}
		}
	}
	if students == nil {
		students = []*student.Student{}
	}
	return students, nil
}

// Digest returns the hex BLAKE2b-256 digest of a document.
func Digest(doc []byte) string {
	sum := blake2b.Sum256(doc)
	return hex.EncodeToString(sum[:])
}

// VerifyDigest checks doc against an expected digest. An empty expected digest
// always verifies.
func VerifyDigest(doc []byte, expected string) error {
	if expected == "" {
		return nil
	}
	if got := Digest(doc); got != expected {
		return fmt.Errorf("%w: want %s, got %s", ErrDigestMismatch, expected, got)
	}
	return nil
}
