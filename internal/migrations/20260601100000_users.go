package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	m.addMigration(&migration{
		version: "20260601100000",
		up:      mig_20260601100000_users_up,
		down:    mig_20260601100000_users_down,
	})
}

func mig_20260601100000_users_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            name VARCHAR(255) NOT NULL,
            email VARCHAR(255) NOT NULL UNIQUE,
            password_hash TEXT,
            roles TEXT[] NOT NULL DEFAULT '{learner}',
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
    `)
	if err != nil {
		return err
	}

	// Seed with a default admin
	password := "admin"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	_, err = tx.Exec(`
        INSERT INTO users (name, email, password_hash, roles)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (email) DO NOTHING;
    `, "Admin", "admin@admin.com", string(hashedPassword), "{admin,planner,learner}")

	return err
}

func mig_20260601100000_users_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS users;`)
	return err
}
