package migrations

import (
	"github.com/jmoiron/sqlx"
)

func init() {
	m.addMigration(&migration{
		version: "20260601101000",
		up:      mig_20260601101000_roadmaps_up,
		down:    mig_20260601101000_roadmaps_down,
	})
}

func mig_20260601101000_roadmaps_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS roadmaps (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            title VARCHAR(255) NOT NULL,
            creator_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_roadmaps_creator_id ON roadmaps(creator_id);
    `)
	return err
}

func mig_20260601101000_roadmaps_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS roadmaps;`)
	return err
}
