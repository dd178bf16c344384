package migrations

import (
	"github.com/jmoiron/sqlx"
)

func init() {
	m.addMigration(&migration{
		version: "20260601105000",
		up:      mig_20260601105000_roadmap_assignments_up,
		down:    mig_20260601105000_roadmap_assignments_down,
	})
}

func mig_20260601105000_roadmap_assignments_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS roadmap_assignments (
            roadmap_id UUID NOT NULL REFERENCES roadmaps(id) ON DELETE CASCADE,
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            access_type VARCHAR(50) NOT NULL CHECK (access_type IN ('learner', 'viewer', 'commenter')),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            PRIMARY KEY (roadmap_id, user_id)
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_roadmap_assignments_user_id ON roadmap_assignments(user_id);
    `)
	if err != nil {
		return err
	}

	// Every assignment change is broadcast on the access_changes channel so
	// other instances can drop their cached access levels. Cascaded deletes
	// from roadmap removal fire the trigger per row, which covers roadmap
	// deletion without a second trigger.
	_, err = tx.Exec(`
        CREATE OR REPLACE FUNCTION notify_access_change() RETURNS TRIGGER AS $$
        BEGIN
            IF TG_OP = 'DELETE' THEN
                PERFORM pg_notify('access_changes', TG_OP || ':' || OLD.roadmap_id || ':' || OLD.user_id);
                RETURN OLD;
            END IF;
            PERFORM pg_notify('access_changes', TG_OP || ':' || NEW.roadmap_id || ':' || NEW.user_id);
            RETURN NEW;
        END;
        $$ LANGUAGE plpgsql;
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE TRIGGER roadmap_assignments_notify
        AFTER INSERT OR UPDATE OR DELETE ON roadmap_assignments
        FOR EACH ROW EXECUTE FUNCTION notify_access_change();
    `)
	return err
}

func mig_20260601105000_roadmap_assignments_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        DROP TRIGGER IF EXISTS roadmap_assignments_notify ON roadmap_assignments;
        DROP FUNCTION IF EXISTS notify_access_change();
        DROP TABLE IF EXISTS roadmap_assignments;
    `)
	return err
}
