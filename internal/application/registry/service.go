// Package registry implements the student record service: the single owner of
// the in-memory record set. It validates every mutation, keeps ids unique and
// rewrites the whole persisted document after each successful change.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// Service owns the record collection. Callers only ever receive copies.
//
// Mutations apply to memory first and are then persisted. When persisting
// fails the in-memory change is kept, the failure is logged and Synced
// reports false until a later save succeeds.
type Service struct {
	mu       sync.RWMutex
	students []*student.Student
	gateway  student.Gateway
	log      *slog.Logger
	synced   bool
	closed   bool
}

// NewService loads the full record set once through the gateway.
func NewService(ctx context.Context, gateway student.Gateway, log *slog.Logger) *Service {
	s := &Service{
		gateway: gateway,
		log:     logger.OrDefault(log).With(logger.Component("registry")),
		synced:  true,
	}

	loaded := gateway.LoadAll(ctx)
	s.students = make([]*student.Student, 0, len(loaded))
	seen := make(map[int]struct{}, len(loaded))
	for _, st := range loaded {
		if st == nil {
			continue
		}
		if _, dup := seen[st.ID]; dup {
			s.log.Warn("loaded data contains a duplicate student ID", logger.StudentID(st.ID))
		}
		seen[st.ID] = struct{}{}
		s.students = append(s.students, st.Clone())
	}

	return s
}

// Synced reports whether the last save succeeded.
func (s *Service) Synced() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.synced
}

// Close waits for an in-flight mutation to finish saving. Later mutations
// are rejected, so the document store can be released afterwards.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// ══════════════════════════════════════════════════════════════════════════════
// MUTATIONS
// ══════════════════════════════════════════════════════════════════════════════

// Add validates and appends a record. A validation failure returns a
// *student.ValidationError. A duplicate id returns false without an error.
func (s *Service) Add(ctx context.Context, st *student.Student) (bool, error) {
	if res := student.Validate(st); !res.Valid() {
		s.log.Warn("validation failed", logger.Operation("add"), slog.String("reason", res.Message()))
		return false, res.Err("Add")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, errClosed("Add")
	}
	if s.indexOf(st.ID) >= 0 {
		s.log.Warn("attempted to add duplicate student ID", logger.StudentID(st.ID))
		return false, nil
	}

	s.students = append(s.students, st.Clone())
	s.persist(ctx, "add")
	s.log.Info("student added", logger.StudentID(st.ID), slog.String("name", st.Name))
	return true, nil
}

// Update replaces every field, including the id, of the record stored under
// id. A missing record returns false. Moving the record onto an id owned by
// another record returns an error matching shared.ErrConflict.
func (s *Service) Update(ctx context.Context, id int, st *student.Student) (bool, error) {
	if res := student.Validate(st); !res.Valid() {
		s.log.Warn("update validation failed", logger.StudentID(id), slog.String("reason", res.Message()))
		return false, res.Err("Update")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, errClosed("Update")
	}
	idx := s.indexOf(id)
	if idx < 0 {
		s.log.Warn("student not found for update", logger.StudentID(id))
		return false, nil
	}

	if st.ID != id && s.indexOf(st.ID) >= 0 {
		s.log.Warn("cannot update: ID already exists", logger.StudentID(id), slog.Int("new_id", st.ID))
		return false, shared.NewDomainError("student", "Update", shared.ErrConflict,
			fmt.Sprintf("Student ID %d already exists.", st.ID))
	}

	s.students[idx] = st.Clone()
	s.persist(ctx, "update")
	s.log.Info("student updated", logger.StudentID(id), slog.Int("new_id", st.ID))
	return true, nil
}

// Delete removes the record with the given id. Returns false if absent.
func (s *Service) Delete(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.log.Warn("delete rejected: registry closed", logger.StudentID(id))
		return false
	}
	idx := s.indexOf(id)
	if idx < 0 {
		s.log.Warn("student not found for deletion", logger.StudentID(id))
		return false
	}

	removed := s.students[idx]
	s.students = slices.Delete(s.students, idx, idx+1)
	s.persist(ctx, "delete")
	s.log.Info("student deleted", logger.StudentID(id), slog.String("name", removed.Name))
	return true
}

// persist writes the whole collection. Callers must hold the write lock.
func (s *Service) persist(ctx context.Context, op string) {
	s.synced = s.gateway.SaveAll(ctx, s.students)
	if !s.synced {
		s.log.Error("change kept in memory but not persisted",
			logger.Operation(op), logger.Count(len(s.students)))
	}
}

func errClosed(op string) error {
	return shared.NewDomainError("registry", op, shared.ErrPersistence, "registry is closed")
}

// indexOf returns the position of the first record with id, or -1.
func (s *Service) indexOf(id int) int {
	for i, st := range s.students {
		if st.ID == id {
			return i
		}
	}
	return -1
}
