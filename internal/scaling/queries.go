package scaling

const (
	createScoresTable = `CREATE TABLE IF NOT EXISTS scores (
						country   TEXT NOT NULL,
						session   INT NOT NULL,
						year      INT NOT NULL,
						role      INT NOT NULL DEFAULT 0,
						wordscore DOUBLE PRECISION,
						scored_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
						PRIMARY KEY (country, year)
						)`
	upsertScore = `INSERT INTO scores (country, session, year, role, wordscore, scored_at)
					VALUES ($1, $2, $3, $4, $5, NOW())
					ON CONFLICT (country, year) DO UPDATE SET
						session = EXCLUDED.session,
						role = EXCLUDED.role,
						wordscore = EXCLUDED.wordscore,
						scored_at = NOW()`
)
