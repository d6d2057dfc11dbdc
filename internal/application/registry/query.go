package registry

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/alem-hub/student-registry/internal/domain/student"
)

// All returns a snapshot of every record in stored order.
func (s *Service) All() []*student.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return student.CloneAll(s.students)
}

// Len returns the number of records.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.students)
}

// ByID returns a copy of the record with the given id.
func (s *Service) ByID(id int) (*student.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(id); idx >= 0 {
		return s.students[idx].Clone(), true
	}
	return nil, false
}

// Topper returns the record with the highest average. On a tie the record
// that comes first in stored order wins.
func (s *Service) Topper() (*student.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *student.Student
	for _, st := range s.students {
		if best == nil || st.Average() > best.Average() {
			best = st
		}
	}
	if best == nil {
		return nil, false
	}
	return best.Clone(), true
}

// ══════════════════════════════════════════════════════════════════════════════
// SORTING
// ══════════════════════════════════════════════════════════════════════════════

// SortedByName orders records by name using ordinal (byte-wise) comparison.
func (s *Service) SortedByName() []*student.Student {
	return s.sorted(func(a, b *student.Student) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// SortedByAge orders records by ascending age.
func (s *Service) SortedByAge() []*student.Student {
	return s.sorted(func(a, b *student.Student) int {
		return cmp.Compare(a.Age, b.Age)
	})
}

// SortedByAverage orders records by descending average.
func (s *Service) SortedByAverage() []*student.Student {
	return s.sorted(func(a, b *student.Student) int {
		return cmp.Compare(b.Average(), a.Average())
	})
}

func (s *Service) sorted(fn func(a, b *student.Student) int) []*student.Student {
	out := s.All()
	slices.SortStableFunc(out, fn)
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// FILTERING & SEARCH
// ══════════════════════════════════════════════════════════════════════════════

// FilterByDepartment returns records whose department equals dept, ignoring
// case. A blank dept matches nothing.
func (s *Service) FilterByDepartment(dept string) []*student.Student {
	if isBlank(dept) {
		return []*student.Student{}
	}
	fold := cases.Fold()
	want := fold.String(dept)
	return s.where(func(st *student.Student) bool {
		return fold.String(st.Department) == want
	})
}

// FilterByMinimumAverage returns records with an average of at least threshold.
func (s *Service) FilterByMinimumAverage(threshold float64) []*student.Student {
	return s.where(func(st *student.Student) bool {
		return st.Average() >= threshold
	})
}

// SearchByName returns records whose name contains term, ignoring case.
// A blank term matches nothing.
func (s *Service) SearchByName(term string) []*student.Student {
	return s.search(term, func(st *student.Student) string { return st.Name })
}

// SearchByDepartment returns records whose department contains term,
// ignoring case. A blank term matches nothing.
func (s *Service) SearchByDepartment(term string) []*student.Student {
	return s.search(term, func(st *student.Student) string { return st.Department })
}

func (s *Service) search(term string, field func(*student.Student) string) []*student.Student {
	if isBlank(term) {
		return []*student.Student{}
	}
	fold := cases.Fold()
	needle := fold.String(term)
	return s.where(func(st *student.Student) bool {
		return strings.Contains(fold.String(field(st)), needle)
	})
}

func (s *Service) where(keep func(*student.Student) bool) []*student.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*student.Student{}
	for _, st := range s.students {
		if keep(st) {
			out = append(out, st.Clone())
		}
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
