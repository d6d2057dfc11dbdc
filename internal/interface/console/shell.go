// Package console implements the interactive text menu over the record
// service. The shell only parses input and renders results; every rule lives
// in the registry service.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"

	"github.com/alem-hub/student-registry/internal/application/registry"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// Registry is the subset of the record service the shell drives.
type Registry interface {
	Add(ctx context.Context, s *student.Student) (bool, error)
	Update(ctx context.Context, id int, s *student.Student) (bool, error)
	Delete(ctx context.Context, id int) bool
	All() []*student.Student
	ByID(id int) (*student.Student, bool)
	Topper() (*student.Student, bool)
	SortedByName() []*student.Student
	SortedByAge() []*student.Student
	SortedByAverage() []*student.Student
	FilterByDepartment(dept string) []*student.Student
	FilterByMinimumAverage(threshold float64) []*student.Student
	SearchByName(term string) []*student.Student
	SearchByDepartment(term string) []*student.Student
	Statistics() registry.Statistics
	Synced() bool
}

// Config holds shell wiring.
type Config struct {
	// In is read line by line. Closing it ends the session.
	In io.Reader

	// Out receives prompts and results.
	Out io.Writer

	// Logger for structured logging. Nil discards.
	Logger *slog.Logger

	// Title is printed above the main menu.
	Title string
}

// ══════════════════════════════════════════════════════════════════════════════
// SHELL
// ══════════════════════════════════════════════════════════════════════════════

// action is one main-menu entry.
type action struct {
	label string
	name  string
	run   func(ctx context.Context) error
}

// Shell is a line-oriented menu loop bound to one session.
type Shell struct {
	registry  Registry
	in        *bufio.Scanner
	out       io.Writer
	log       *slog.Logger
	title     string
	sessionID string
	actions   []action
}

// NewShell creates a shell with a fresh session id.
func NewShell(reg Registry, cfg Config) *Shell {
	sessionID := uuid.NewString()
	title := cfg.Title
	if title == "" {
		title = "Student Management System"
	}

	s := &Shell{
		registry:  reg,
		in:        bufio.NewScanner(cfg.In),
		out:       cfg.Out,
		log:       logger.OrDefault(cfg.Logger).With(logger.Component("console"), logger.SessionID(sessionID)),
		title:     title,
		sessionID: sessionID,
	}

	s.actions = []action{
		{label: "Add Student", name: "add", run: s.addStudent},
		{label: "View All Students", name: "list", run: s.viewAll},
		{label: "Search Student by ID", name: "find", run: s.findByID},
		{label: "View Topper", name: "topper", run: s.showTopper},
		{label: "Update Student", name: "update", run: s.updateStudent},
		{label: "Delete Student", name: "delete", run: s.deleteStudent},
		{label: "Sort Students", name: "sort", run: s.sortStudents},
		{label: "Filter Students", name: "filter", run: s.filterStudents},
		{label: "View Statistics", name: "statistics", run: s.viewStatistics},
		{label: "Enhanced Search", name: "search", run: s.enhancedSearch},
	}

	return s
}

// SessionID returns the id attached to every log record of this session.
func (s *Shell) SessionID() string {
	return s.sessionID
}

// Run loops until the user exits, input ends or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	ctx = logger.WithContext(ctx, s.log)
	s.log.Info("session started")

	exitChoice := len(s.actions) + 1
	for {
		if err := ctx.Err(); err != nil {
			s.log.Info("session interrupted")
			return err
		}

		s.printMenu()
		line, err := s.prompt("\nChoose an option: ")
		if err != nil {
			return s.finish(err)
		}

		choice, ok := parseInt(line)
		if !ok {
			s.log.Warn("invalid menu input", slog.String("input", line))
			s.println("Invalid input. Please enter a number.")
			continue
		}

		switch {
		case choice == exitChoice:
			s.log.Info("session closed by user")
			s.println("Goodbye!")
			return nil
		case choice >= 1 && choice < exitChoice:
			if err := s.dispatch(ctx, s.actions[choice-1]); err != nil {
				return s.finish(err)
			}
		default:
			s.printf("Invalid choice. Please select 1-%d.\n", exitChoice)
		}
	}
}

// dispatch runs one action and keeps the loop alive if it panics.
func (s *Shell) dispatch(ctx context.Context, a action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("unexpected error in menu action",
				logger.Operation(a.name),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			s.println("An unexpected error occurred. Please try again.")
			err = nil
		}
	}()
	return a.run(ctx)
}

func (s *Shell) finish(err error) error {
	if errors.Is(err, io.EOF) {
		s.log.Info("input closed, ending session")
		return nil
	}
	s.log.Error("reading input failed", logger.Err(err))
	return err
}

func (s *Shell) printMenu() {
	s.printf("\n=== %s ===\n", s.title)
	for i, a := range s.actions {
		s.printf("%-4s%s\n", fmt.Sprintf("%d.", i+1), a.label)
	}
	s.printf("%-4sExit\n", fmt.Sprintf("%d.", len(s.actions)+1))
}

// ══════════════════════════════════════════════════════════════════════════════
// INPUT & OUTPUT
// ══════════════════════════════════════════════════════════════════════════════

// prompt writes label and reads one line. io.EOF means the input is exhausted.
func (s *Shell) prompt(label string) (string, error) {
	s.printf("%s", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(text string) {
	fmt.Fprintln(s.out, text)
}

func (s *Shell) printStudents(students []*student.Student) {
	for _, st := range students {
		s.println(st.String())
	}
}

// warnIfUnsynced tells the user when the last change did not reach storage.
func (s *Shell) warnIfUnsynced() {
	if !s.registry.Synced() {
		s.println("Warning: the change is kept in memory but could not be saved.")
	}
}
