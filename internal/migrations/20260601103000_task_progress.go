package migrations

import (
	"github.com/jmoiron/sqlx"
)

func init() {
	m.addMigration(&migration{
		version: "20260601103000",
		up:      mig_20260601103000_task_progress_up,
		down:    mig_20260601103000_task_progress_down,
	})
}

func mig_20260601103000_task_progress_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS task_progress (
            task_id UUID NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            completed BOOLEAN NOT NULL DEFAULT FALSE,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            PRIMARY KEY (task_id, user_id)
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_task_progress_user_id ON task_progress(user_id);
    `)
	return err
}

func mig_20260601103000_task_progress_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS task_progress;`)
	return err
}
