package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD MAINTENANCE
// ══════════════════════════════════════════════════════════════════════════════

func (s *Shell) addStudent(ctx context.Context) error {
	s.println("\n--- Add New Student ---")

	line, err := s.prompt("Enter ID: ")
	if err != nil {
		return err
	}
	id, ok := parseInt(line)
	if !ok {
		s.println("Error: ID must be a valid number.")
		return nil
	}

	name, err := s.prompt("Enter Name: ")
	if err != nil {
		return err
	}

	line, err = s.prompt("Enter Age: ")
	if err != nil {
		return err
	}
	age, ok := parseInt(line)
	if !ok {
		s.println("Error: Age must be a valid number.")
		return nil
	}

	dept, err := s.prompt("Enter Department: ")
	if err != nil {
		return err
	}

	line, err = s.prompt("Enter marks (comma-separated): ")
	if err != nil {
		return err
	}
	marks, perr := parseMarks(line)
	if perr != nil {
		s.printf("Error: %v.\n", perr)
		return nil
	}

	added, aerr := s.registry.Add(ctx, student.New(id, name, age, dept, marks))
	switch {
	case aerr != nil:
		s.reportError(ctx, "add", aerr)
	case !added:
		s.println("Error: Student ID already exists.")
	default:
		s.println("✓ Student added successfully.")
		s.warnIfUnsynced()
	}
	return nil
}

func (s *Shell) updateStudent(ctx context.Context) error {
	s.println("\n--- Update Student ---")

	id, ok, err := s.promptID("Enter Student ID to update: ")
	if err != nil || !ok {
		return err
	}

	existing, found := s.registry.ByID(id)
	if !found {
		s.println("Student not found.")
		return nil
	}

	s.printf("Current Details: %s\n", existing)
	s.println("\nEnter new details (press Enter to keep current value):")

	updated := existing.Clone()

	line, err := s.prompt(fmt.Sprintf("New ID [%d]: ", existing.ID))
	if err != nil {
		return err
	}
	if !isBlank(line) {
		if updated.ID, ok = parseInt(line); !ok {
			s.println("Error: ID must be a valid number.")
			return nil
		}
	}

	line, err = s.prompt(fmt.Sprintf("New Name [%s]: ", existing.Name))
	if err != nil {
		return err
	}
	if !isBlank(line) {
		updated.Name = line
	}

	line, err = s.prompt(fmt.Sprintf("New Age [%d]: ", existing.Age))
	if err != nil {
		return err
	}
	if !isBlank(line) {
		if updated.Age, ok = parseInt(line); !ok {
			s.println("Error: Age must be a valid number.")
			return nil
		}
	}

	line, err = s.prompt(fmt.Sprintf("New Department [%s]: ", existing.Department))
	if err != nil {
		return err
	}
	if !isBlank(line) {
		updated.Department = line
	}

	line, err = s.prompt(fmt.Sprintf("New Marks (comma-separated) [%s]: ", joinMarks(existing.Marks)))
	if err != nil {
		return err
	}
	if !isBlank(line) {
		marks, perr := parseMarks(line)
		if perr != nil {
			s.printf("Error: %v.\n", perr)
			return nil
		}
		updated.Marks = marks
	}

	ok, uerr := s.registry.Update(ctx, id, updated)
	switch {
	case uerr != nil:
		s.reportError(ctx, "update", uerr)
	case !ok:
		s.println("Failed to update student.")
	default:
		s.println("✓ Student updated successfully.")
		s.warnIfUnsynced()
	}
	return nil
}

func (s *Shell) deleteStudent(ctx context.Context) error {
	s.println("\n--- Delete Student ---")

	id, ok, err := s.promptID("Enter Student ID to delete: ")
	if err != nil || !ok {
		return err
	}

	existing, found := s.registry.ByID(id)
	if !found {
		s.println("Student not found.")
		return nil
	}

	s.printf("Student to delete: %s\n", existing)
	answer, err := s.prompt("Are you sure? (yes/no): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
		s.println("Deletion cancelled.")
		return nil
	}

	if s.registry.Delete(ctx, id) {
		s.println("✓ Student deleted successfully.")
		s.warnIfUnsynced()
	} else {
		s.println("Failed to delete student.")
	}
	return nil
}

// reportError renders a service error. Validation and conflict errors carry
// user-facing messages; anything else is logged.
func (s *Shell) reportError(ctx context.Context, op string, err error) {
	if shared.IsValidation(err) {
		if ve, ok := student.ValidationErrorFrom(err); ok {
			s.printf("Validation Error: %s\n", ve.Result.Message())
			return
		}
	}
	var de *shared.DomainError
	if shared.IsConflict(err) && errors.As(err, &de) {
		s.printf("Error: %s\n", de.Message)
		return
	}
	if shared.IsPersistence(err) && errors.As(err, &de) {
		logger.FromContext(ctx).Warn("menu action rejected", logger.Operation(op), logger.Err(err))
		s.printf("Error: %s.\n", de.Message)
		return
	}
	logger.FromContext(ctx).Error("menu action failed", logger.Operation(op), logger.Err(err))
	s.printf("Error: %v\n", err)
}

// ══════════════════════════════════════════════════════════════════════════════
// LOOKUPS & REPORTS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Shell) viewAll(context.Context) error {
	all := s.registry.All()
	if len(all) == 0 {
		s.println("\nNo students found.")
		return nil
	}
	s.printf("\n--- All Students (Total: %d) ---\n", len(all))
	s.printStudents(all)
	return nil
}

func (s *Shell) findByID(context.Context) error {
	id, ok, err := s.promptID("\nEnter Student ID: ")
	if err != nil || !ok {
		return err
	}
	st, found := s.registry.ByID(id)
	if !found {
		s.println("Student not found.")
		return nil
	}
	s.printf("\n%s\n", st)
	return nil
}

func (s *Shell) showTopper(context.Context) error {
	top, ok := s.registry.Topper()
	if !ok {
		s.println("\nNo students available.")
		return nil
	}
	s.printf("\nTopper: %s\n", top)
	return nil
}

func (s *Shell) viewStatistics(context.Context) error {
	stats := s.registry.Statistics()
	if stats.Total == 0 {
		s.println("\nNo students available for statistics.")
		return nil
	}
	s.printf("%s", stats)
	return nil
}

func (s *Shell) sortStudents(context.Context) error {
	s.println("\n--- Sort Students ---")
	s.println("1. Sort by Name")
	s.println("2. Sort by Age")
	s.println("3. Sort by Average Marks")
	choice, ok, err := s.promptChoice("Choose sorting option: ")
	if err != nil || !ok {
		return err
	}

	var sorted []*student.Student
	switch choice {
	case 1:
		sorted = s.registry.SortedByName()
		s.println("\n--- Students Sorted by Name ---")
	case 2:
		sorted = s.registry.SortedByAge()
		s.println("\n--- Students Sorted by Age ---")
	case 3:
		sorted = s.registry.SortedByAverage()
		s.println("\n--- Students Sorted by Average Marks ---")
	default:
		s.println("Invalid choice.")
		return nil
	}

	if len(sorted) == 0 {
		s.println("No students found.")
		return nil
	}
	s.printStudents(sorted)
	return nil
}

func (s *Shell) filterStudents(ctx context.Context) error {
	s.println("\n--- Filter Students ---")
	s.println("1. Filter by Department")
	s.println("2. Filter by Minimum Average Marks")
	choice, ok, err := s.promptChoice("Choose filtering option: ")
	if err != nil || !ok {
		return err
	}

	var filtered []*student.Student
	switch choice {
	case 1:
		dept, err := s.prompt("Enter Department: ")
		if err != nil {
			return err
		}
		filtered = s.registry.FilterByDepartment(dept)
		logger.FromContext(ctx).Debug("filtered by department", logger.Department(dept), logger.Count(len(filtered)))
		s.printf("\n--- Students in %s Department ---\n", dept)
	case 2:
		line, err := s.prompt("Enter Minimum Average: ")
		if err != nil {
			return err
		}
		minAvg, ok := parseFloat(line)
		if !ok {
			s.println("Invalid average.")
			return nil
		}
		filtered = s.registry.FilterByMinimumAverage(minAvg)
		s.printf("\n--- Students with Average >= %.2f ---\n", minAvg)
	default:
		s.println("Invalid choice.")
		return nil
	}

	if len(filtered) == 0 {
		s.println("No students match the filter criteria.")
		return nil
	}
	s.printStudents(filtered)
	return nil
}

func (s *Shell) enhancedSearch(ctx context.Context) error {
	s.println("\n--- Enhanced Search ---")
	s.println("1. Search by Name (partial match)")
	s.println("2. Search by Department (partial match)")
	choice, ok, err := s.promptChoice("Choose search option: ")
	if err != nil || !ok {
		return err
	}

	var (
		term    string
		results []*student.Student
	)
	switch choice {
	case 1:
		if term, err = s.prompt("Enter name to search: "); err != nil {
			return err
		}
		results = s.registry.SearchByName(term)
	case 2:
		if term, err = s.prompt("Enter department to search: "); err != nil {
			return err
		}
		results = s.registry.SearchByDepartment(term)
	default:
		s.println("Invalid choice.")
		return nil
	}

	logger.FromContext(ctx).Debug("search finished", slog.String("term", term), logger.Count(len(results)))
	s.printf("\n--- Search Results for '%s' ---\n", term)
	if len(results) == 0 {
		s.println("No students found matching your search.")
		return nil
	}
	s.printf("Found %d student(s):\n", len(results))
	s.printStudents(results)
	return nil
}

// promptID reads a record ID for a lookup. ok is false when the input was not
// a positive number, in which case the message has already been printed.
func (s *Shell) promptID(label string) (id int, ok bool, err error) {
	line, err := s.prompt(label)
	if err != nil {
		return 0, false, err
	}
	if id, ok = parseInt(line); !ok {
		s.println("Invalid ID.")
		return 0, false, nil
	}
	if res := student.ValidateID(id); !res.Valid() {
		s.printf("Validation Error: %s\n", res.Message())
		return 0, false, nil
	}
	return id, true, nil
}

// promptChoice reads a sub-menu number. ok is false when the input was not a
// number, in which case the message has already been printed.
func (s *Shell) promptChoice(label string) (choice int, ok bool, err error) {
	line, err := s.prompt(label)
	if err != nil {
		return 0, false, err
	}
	if choice, ok = parseInt(line); !ok {
		s.println("Invalid input.")
	}
	return choice, ok, nil
}
