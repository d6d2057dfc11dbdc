package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE STUDENT DOCUMENTS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- One row per registry document. The body is the complete JSON array of
-- student records; it is always replaced as a whole.
CREATE TABLE IF NOT EXISTS student_documents (
    name VARCHAR(100) PRIMARY KEY,
    revision UUID NOT NULL,
    body TEXT NOT NULL,
    digest CHAR(64) NOT NULL,
    saved_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`

const migration001Down = `
DROP TABLE IF EXISTS student_documents;
`

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_student_documents",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
	}
}
