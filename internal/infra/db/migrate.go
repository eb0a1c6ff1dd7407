package db

import (
	"database/sql"
	_ "embed"
)

//go:embed seeds/movies.sql
var seedMoviesSQL string

func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS movies (
    id         BIGINT PRIMARY KEY,
    title      TEXT NOT NULL,
    genres     JSONB NOT NULL DEFAULT '[]',
    keywords   JSONB NOT NULL DEFAULT '[]',
    overview   TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS swipes (
    user_id    BIGINT NOT NULL,
    movie_id   BIGINT NOT NULL REFERENCES movies(id),
    outcome    VARCHAR(20) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, movie_id)
)`); err != nil {
		return err
	}

	indexes := []string{
		// Per-user swipe history, ordered scans
		`CREATE INDEX IF NOT EXISTS idx_swipes_user_id ON swipes(user_id, created_at)`,
		// Popularity aggregation over the full log
		`CREATE INDEX IF NOT EXISTS idx_swipes_movie_id ON swipes(movie_id)`,
		// Letterboxd import matches on lowercased title
		`CREATE INDEX IF NOT EXISTS idx_movies_title_lower ON movies(lower(title))`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// Outcome values are validated in the domain layer too, but a CHECK
	// constraint keeps hand-written SQL honest. Errors are ignored when the
	// constraint already exists.
	_, _ = db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_swipe_outcome'
    ) THEN
        ALTER TABLE swipes ADD CONSTRAINT chk_swipe_outcome
        CHECK (outcome IN ('like', 'superlike', 'dislike', 'skip'));
    END IF;
END $$;
`)

	if _, err := db.Exec(seedMoviesSQL); err != nil {
		return err
	}

	return nil
}

// MigrateDown rolls back the schema. Use with caution: this deletes all swipe
// history and the catalog.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_swipes_user_id`,
		`DROP INDEX IF EXISTS idx_swipes_movie_id`,
		`DROP INDEX IF EXISTS idx_movies_title_lower`,
		`DROP TABLE IF EXISTS swipes CASCADE`,
		`DROP TABLE IF EXISTS movies CASCADE`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
