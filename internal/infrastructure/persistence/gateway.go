package persistence

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/pkg/logger"
)

// DocumentStore keeps exactly one document and replaces it in full on save.
type DocumentStore interface {
	// Name describes the store for logs, e.g. "file:students.json".
	Name() string

	// Load returns the current document, or (nil, nil) when none exists yet.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the document.
	Save(ctx context.Context, doc []byte) error
}

// Gateway implements student.Gateway on top of a DocumentStore.
type Gateway struct {
	store DocumentStore
	log   *slog.Logger

	mu      sync.Mutex
	lastErr error
}

var _ student.Gateway = (*Gateway)(nil)

// NewGateway creates a new Gateway.
func NewGateway(store DocumentStore, log *slog.Logger) *Gateway {
	return &Gateway{
		store: store,
		log:   logger.OrDefault(log).With(logger.Component("persistence"), logger.Store(store.Name())),
	}
}

// LoadAll reads every persisted record. It never fails: a missing, blank or
// unreadable document is logged and yields an empty slice.
func (g *Gateway) LoadAll(ctx context.Context) []*student.Student {
	doc, err := g.store.Load(ctx)
	if err != nil {
		g.fail(shared.WrapError("persistence", "LoadAll", shared.ErrPersistence, "failed to load students", err))
		return []*student.Student{}
	}
	if doc == nil {
		g.succeed()
		g.log.Info("no existing data found, starting with an empty student list")
		return []*student.Student{}
	}
	if IsBlank(doc) {
		g.succeed()
		g.log.Warn("data document is empty")
		return []*student.Student{}
	}

	students, err := Decode(doc)
	if err != nil {
		g.fail(shared.WrapError("persistence", "LoadAll", shared.ErrPersistence, "failed to parse student data", err))
		return []*student.Student{}
	}

	g.succeed()
	g.log.Info("loaded students", logger.Count(len(students)))
	return students
}

// SaveAll replaces the persisted document with the given records.
func (g *Gateway) SaveAll(ctx context.Context, students []*student.Student) bool {
	doc, err := Encode(students)
	if err != nil {
		g.fail(shared.WrapError("persistence", "SaveAll", shared.ErrPersistence, "failed to encode students", err))
		return false
	}

	if err := g.store.Save(ctx, doc); err != nil {
		g.fail(shared.WrapError("persistence", "SaveAll", shared.ErrPersistence, "failed to save students", err),
			logger.Count(len(students)))
		return false
	}

	g.succeed()
	g.log.Info("saved students", logger.Count(len(students)), logger.Digest(Digest(doc)))
	return true
}

// Err returns the failure of the most recent LoadAll or SaveAll, or nil if it
// succeeded. A non-nil error matches shared.ErrPersistence.
func (g *Gateway) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}

func (g *Gateway) fail(err *shared.DomainError, attrs ...any) {
	g.mu.Lock()
	g.lastErr = err
	g.mu.Unlock()
	g.log.Error(err.Message, append(attrs, logger.Err(err.Err))...)
}

func (g *Gateway) succeed() {
	g.mu.Lock()
	g.lastErr = nil
	g.mu.Unlock()
}
