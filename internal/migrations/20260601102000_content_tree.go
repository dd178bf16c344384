package migrations

import (
	"github.com/jmoiron/sqlx"
)

func init() {
	m.addMigration(&migration{
		version: "20260601102000",
		up:      mig_20260601102000_content_tree_up,
		down:    mig_20260601102000_content_tree_down,
	})
}

// The content tree is inserted level by level inside one transaction, and
// read back ordered by (created_at, id). NOW() is transaction-stable in
// Postgres and would collapse every row to the same timestamp, so these
// tables default to clock_timestamp() to keep insertion order.
func mig_20260601102000_content_tree_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS phases (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            roadmap_id UUID NOT NULL REFERENCES roadmaps(id) ON DELETE CASCADE,
            title VARCHAR(255) NOT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT clock_timestamp()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE TABLE IF NOT EXISTS weeks (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            phase_id UUID NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
            title VARCHAR(255) NOT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT clock_timestamp()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE TABLE IF NOT EXISTS days (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            week_id UUID NOT NULL REFERENCES weeks(id) ON DELETE CASCADE,
            title VARCHAR(255) NOT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT clock_timestamp()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE TABLE IF NOT EXISTS tasks (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            day_id UUID NOT NULL REFERENCES days(id) ON DELETE CASCADE,
            description TEXT NOT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT clock_timestamp()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_phases_roadmap_id ON phases(roadmap_id);
        CREATE INDEX IF NOT EXISTS idx_weeks_phase_id ON weeks(phase_id);
        CREATE INDEX IF NOT EXISTS idx_days_week_id ON days(week_id);
        CREATE INDEX IF NOT EXISTS idx_tasks_day_id ON tasks(day_id);
    `)
	return err
}

func mig_20260601102000_content_tree_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        DROP TABLE IF EXISTS tasks;
        DROP TABLE IF EXISTS days;
        DROP TABLE IF EXISTS weeks;
        DROP TABLE IF EXISTS phases;
    `)
	return err
}
