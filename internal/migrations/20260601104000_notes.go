package migrations

import (
	"github.com/jmoiron/sqlx"
)

func init() {
	m.addMigration(&migration{
		version: "20260601104000",
		up:      mig_20260601104000_notes_up,
		down:    mig_20260601104000_notes_down,
	})
}

func mig_20260601104000_notes_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS notes (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            task_id UUID NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            category VARCHAR(50) NOT NULL CHECK (category IN ('to_be_done', 'to_be_practiced', 'to_be_searched', 'to_be_used_as_reference')),
            content TEXT NOT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT clock_timestamp(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_notes_task_id ON notes(task_id);
        CREATE INDEX IF NOT EXISTS idx_notes_user_id ON notes(user_id);
    `)
	return err
}

func mig_20260601104000_notes_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS notes;`)
	return err
}
