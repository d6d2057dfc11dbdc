package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Statistics aggregates the per-record averages of the whole collection.
type Statistics struct {
	Total          int
	OverallAverage float64
	HighestAverage float64
	LowestAverage  float64
	Departments    map[string]DepartmentStats
}

// DepartmentStats aggregates one department.
type DepartmentStats struct {
	Count   int
	Average float64
}

// Statistics computes the aggregate report. An empty collection yields a
// zero report with an empty department map.
func (s *Service) Statistics() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Statistics{Departments: map[string]DepartmentStats{}}
	if len(s.students) == 0 {
		return stats
	}

	sums := make(map[string]float64)
	var total float64
	for i, st := range s.students {
		avg := st.Average()
		total += avg
		if i == 0 || avg > stats.HighestAverage {
			stats.HighestAverage = avg
		}
		if i == 0 || avg < stats.LowestAverage {
			stats.LowestAverage = avg
		}

		d := stats.Departments[st.Department]
		d.Count++
		stats.Departments[st.Department] = d
		sums[st.Department] += avg
	}

	stats.Total = len(s.students)
	stats.OverallAverage = total / float64(stats.Total)
	for name, d := range stats.Departments {
		d.Average = sums[name] / float64(d.Count)
		stats.Departments[name] = d
	}
	return stats
}

// DepartmentNames returns the department keys in ascending order.
func (st Statistics) DepartmentNames() []string {
	names := make([]string, 0, len(st.Departments))
	for name := range st.Departments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the multi-line class report.
func (st Statistics) String() string {
	var b strings.Builder
	b.WriteString("\n=== Class Statistics ===\n")
	fmt.Fprintf(&b, "Total Students: %d\n", st.Total)
	fmt.Fprintf(&b, "Overall Average: %.2f\n", st.OverallAverage)
	fmt.Fprintf(&b, "Highest Average: %.2f\n", st.HighestAverage)
	fmt.Fprintf(&b, "Lowest Average: %.2f\n", st.LowestAverage)

	if len(st.Departments) > 0 {
		b.WriteString("\nDepartment-wise Statistics:\n")
		for _, name := range st.DepartmentNames() {
			d := st.Departments[name]
			fmt.Fprintf(&b, "  %s: %d students, Avg: %.2f\n", name, d.Count, d.Average)
		}
	}
	return b.String()
}
