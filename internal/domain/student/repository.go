package student

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// This interface defines the persistence contract for the registry.
// Implementations live in infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Gateway loads and saves the complete record set as one document.
// There is no partial write: every save replaces everything.
type Gateway interface {
	// LoadAll returns every persisted record. A missing or blank document
	// yields an empty slice. Unreadable content is logged and also yields an
	// empty slice; the failure is never returned to the caller.
	LoadAll(ctx context.Context) []*Student

	// SaveAll replaces the persisted document with the given records.
	// Returns false, after logging the reason, if anything went wrong.
	SaveAll(ctx context.Context, students []*Student) bool
}
