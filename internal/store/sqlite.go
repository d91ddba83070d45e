package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hamdan/hifzi/internal/learner"
	"github.com/hamdan/hifzi/internal/progress"
)

// sqliteVerseRepo implements progress.StateRepo with hand-written SQL.
// Puts are whole-row upserts, matching the get/put contract of the keyed
// store the tracker expects.
type sqliteVerseRepo struct {
	db *sql.DB
}

const verseColumns = `verse_id, surah_number, number_in_surah, status, confidence,
	read_count, test_attempts, successful_recalls, last_practiced_at, mastered_at`

func (r *sqliteVerseRepo) Get(ctx context.Context, verseID string) (*progress.VerseState, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+verseColumns+` FROM verse_states WHERE verse_id = ?`, verseID)
	st, err := scanVerseState(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query verse state: %w", err)
	}
	return st, nil
}

func (r *sqliteVerseRepo) Put(ctx context.Context, st *progress.VerseState) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO verse_states (`+verseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (verse_id) DO UPDATE SET
			status = excluded.status,
			confidence = excluded.confidence,
			read_count = excluded.read_count,
			test_attempts = excluded.test_attempts,
			successful_recalls = excluded.successful_recalls,
			last_practiced_at = excluded.last_practiced_at,
			mastered_at = excluded.mastered_at`,
		st.VerseID, st.SurahNumber, st.NumberInSurah, string(st.Status), string(st.Confidence),
		st.ReadCount, st.TestAttempts, st.SuccessfulRecalls,
		formatTime(st.LastPracticedAt), formatTime(st.MasteredAt))
	if err != nil {
		return fmt.Errorf("upsert verse state: %w", err)
	}
	return nil
}

func (r *sqliteVerseRepo) All(ctx context.Context) ([]*progress.VerseState, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+verseColumns+` FROM verse_states ORDER BY surah_number, number_in_surah`)
	if err != nil {
		return nil, fmt.Errorf("query verse states: %w", err)
	}
	defer rows.Close()

	var out []*progress.VerseState
	for rows.Next() {
		st, err := scanVerseState(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verse state: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verse states: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVerseState(row rowScanner) (*progress.VerseState, error) {
	var (
		st                    progress.VerseState
		status, confidence    string
		practicedAt, mastered sql.NullString
	)
	err := row.Scan(&st.VerseID, &st.SurahNumber, &st.NumberInSurah, &status, &confidence,
		&st.ReadCount, &st.TestAttempts, &st.SuccessfulRecalls, &practicedAt, &mastered)
	if err != nil {
		return nil, err
	}
	st.Status = progress.Status(status)
	st.Confidence = progress.Confidence(confidence)
	if st.LastPracticedAt, err = parseTime(practicedAt); err != nil {
		return nil, err
	}
	if st.MasteredAt, err = parseTime(mastered); err != nil {
		return nil, err
	}
	return &st, nil
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp %q: %w", s.String, err)
	}
	return &t, nil
}

// sqliteLearnerRepo stores the single learner profile as a JSON document
// in a one-row table.
type sqliteLearnerRepo struct {
	db *sql.DB
}

func (r *sqliteLearnerRepo) Load(ctx context.Context) (*learner.Profile, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM learner_profile WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query learner profile: %w", err)
	}
	var p learner.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("unmarshal learner profile: %w", err)
	}
	return &p, nil
}

func (r *sqliteLearnerRepo) Save(ctx context.Context, p *learner.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal learner profile: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO learner_profile (id, data) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data`, string(data))
	if err != nil {
		return fmt.Errorf("save learner profile: %w", err)
	}
	return nil
}
