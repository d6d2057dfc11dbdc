package student

import (
	"fmt"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONSTANTS
// ══════════════════════════════════════════════════════════════════════════════

const (
	// MinNameLength is the minimum number of characters in a name.
	MinNameLength = 2

	// MinAge and MaxAge bound the accepted age, inclusive.
	MinAge = 15
	MaxAge = 100

	// MinMark and MaxMark bound a single mark, inclusive.
	MinMark = 0
	MaxMark = 100
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student is a single record in the registry.
type Student struct {
	// ID is the unique, positive key of the record.
	ID int `json:"id"`

	// Name is the display name, at least MinNameLength characters.
	Name string `json:"name"`

	// Age must lie in [MinAge, MaxAge].
	Age int `json:"age"`

	// Department the student belongs to.
	Department string `json:"department"`

	// Marks holds the grades in the order they were entered.
	Marks []int `json:"marks"`
}

// New builds a student record. The record is not validated.
func New(id int, name string, age int, department string, marks []int) *Student {
	if marks == nil {
		marks = []int{}
	}
	return &Student{
		ID:         id,
		Name:       name,
		Age:        age,
		Department: department,
		Marks:      marks,
	}
}

// Average returns the arithmetic mean of the marks, or 0 when there are none.
func (s *Student) Average() float64 {
	if len(s.Marks) == 0 {
		return 0
	}
	sum := 0
	for _, m := range s.Marks {
		sum += m
	}
	return float64(sum) / float64(len(s.Marks))
}

// Clone returns a deep copy of the record.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}
	c := *s
	c.Marks = make([]int, len(s.Marks))
	copy(c.Marks, s.Marks)
	return &c
}

// Equal reports whether two records hold the same field values.
func (s *Student) Equal(other *Student) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.ID != other.ID || s.Name != other.Name || s.Age != other.Age || s.Department != other.Department {
		return false
	}
	if len(s.Marks) != len(other.Marks) {
		return false
	}
	for i := range s.Marks {
		if s.Marks[i] != other.Marks[i] {
			return false
		}
	}
	return true
}

// String renders the one-line summary shown in listings.
func (s *Student) String() string {
	return fmt.Sprintf("ID: %d, Name: %s, Age: %d, Dept: %s, Avg Marks: %.2f",
		s.ID, s.Name, s.Age, s.Department, s.Average())
}

// CloneAll deep-copies a slice of records.
func CloneAll(students []*Student) []*Student {
	out := make([]*Student, len(students))
	for i, s := range students {
		out[i] = s.Clone()
	}
	return out
}
