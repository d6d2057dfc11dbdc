package student

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alem-hub/student-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VIOLATION CODES
// ══════════════════════════════════════════════════════════════════════════════

// ViolationCode identifies a broken rule.
type ViolationCode string

const (
	CodeIDNotPositive   ViolationCode = "id_not_positive"
	CodeNameEmpty       ViolationCode = "name_empty"
	CodeNameTooShort    ViolationCode = "name_too_short"
	CodeAgeNotPositive  ViolationCode = "age_not_positive"
	CodeAgeOutOfRange   ViolationCode = "age_out_of_range"
	CodeDepartmentEmpty ViolationCode = "department_empty"
	CodeMarkOutOfRange  ViolationCode = "mark_out_of_range"
)

// messageSeparator joins violation messages into one line.
const messageSeparator = "; "

// Kind maps the code onto the shared error kinds.
func (c ViolationCode) Kind() error {
	switch c {
	case CodeIDNotPositive:
		return shared.ErrInvalidID
	case CodeNameEmpty, CodeDepartmentEmpty:
		return shared.ErrEmptyValue
	default:
		return shared.ErrValueOutOfRange
	}
}

// Violation is a single broken rule.
type Violation struct {
	Code    ViolationCode
	Field   string
	Message string
}

// ══════════════════════════════════════════════════════════════════════════════
// VALIDATION RESULT
// ══════════════════════════════════════════════════════════════════════════════

// ValidationResult holds every violation found, in rule order.
type ValidationResult struct {
	Violations []Violation
}

// Valid reports whether no rule was broken.
func (r ValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

// Messages returns the human-readable messages in order.
func (r ValidationResult) Messages() []string {
	out := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		out[i] = v.Message
	}
	return out
}

// Message joins all messages with "; ".
func (r ValidationResult) Message() string {
	return strings.Join(r.Messages(), messageSeparator)
}

// Has reports whether a violation with the given code is present.
func (r ValidationResult) Has(code ViolationCode) bool {
	for _, v := range r.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// Err converts the result into a validation error for the given operation.
// Returns nil when the result is valid.
func (r ValidationResult) Err(op string) error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{
		DomainError: shared.NewDomainError("student", op, shared.ErrValidation, r.Message()),
		Result:      r,
	}
}

func (r *ValidationResult) add(code ViolationCode, field, msg string) {
	r.Violations = append(r.Violations, Violation{Code: code, Field: field, Message: msg})
}

// ValidationError is returned by mutating operations when a record is rejected.
type ValidationError struct {
	*shared.DomainError
	Result ValidationResult
}

// ValidationErrorFrom extracts the structured result from an error chain.
func ValidationErrorFrom(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ══════════════════════════════════════════════════════════════════════════════
// RULES
// ══════════════════════════════════════════════════════════════════════════════

// Validate checks every field rule and collects all violations without
// stopping at the first one. The record is not modified.
func Validate(s *Student) ValidationResult {
	var r ValidationResult
	if s == nil {
		r.add(CodeIDNotPositive, "id", "Student ID must be positive.")
		return r
	}

	if s.ID <= 0 {
		r.add(CodeIDNotPositive, "id", "Student ID must be positive.")
	}

	if isBlank(s.Name) {
		r.add(CodeNameEmpty, "name", "Name cannot be empty.")
	} else if utf8.RuneCountInString(s.Name) < MinNameLength {
		r.add(CodeNameTooShort, "name",
			fmt.Sprintf("Name must be at least %d characters long.", MinNameLength))
	}

	if s.Age <= 0 {
		r.add(CodeAgeNotPositive, "age", "Age must be positive.")
	} else if s.Age < MinAge || s.Age > MaxAge {
		r.add(CodeAgeOutOfRange, "age",
			fmt.Sprintf("Age must be between %d and %d.", MinAge, MaxAge))
	}

	if isBlank(s.Department) {
		r.add(CodeDepartmentEmpty, "department", "Department cannot be empty.")
	}

	for _, m := range s.Marks {
		if m < MinMark || m > MaxMark {
			r.add(CodeMarkOutOfRange, "marks",
				fmt.Sprintf("Marks must be between %d and %d.", MinMark, MaxMark))
			break
		}
	}

	return r
}

// ValidateID checks a bare identifier, e.g. one typed into a lookup prompt.
func ValidateID(id int) ValidationResult {
	var r ValidationResult
	if id <= 0 {
		r.add(CodeIDNotPositive, "id", "ID must be positive.")
	}
	return r
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
