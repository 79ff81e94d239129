package moods

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the persistence boundary for mood entries.
type Store interface {
	CreateEntry(ctx context.Context, userID string, mood Mood, note string) (*Entry, error)
	// ListEntriesByUser returns a user's entries, most recent first.
	ListEntriesByUser(ctx context.Context, userID string) ([]Entry, error)
	// LatestMoodByUser returns the user's most recent mood. found is false
	// when the user has no check-ins yet.
	LatestMoodByUser(ctx context.Context, userID string) (mood Mood, found bool, err error)
	// CountByMoodSince aggregates the user's check-ins per category since
	// the given time.
	CountByMoodSince(ctx context.Context, userID string, since time.Time) (map[Mood]int, error)
}

// NewStore returns the PostgreSQL-backed Store.
func NewStore(pool *pgxpool.Pool) Store {
	return &pgStore{pool: pool}
}

type pgStore struct {
	pool *pgxpool.Pool
}

func (s *pgStore) CreateEntry(ctx context.Context, userID string, mood Mood, note string) (*Entry, error) {
	entry := &Entry{
		UserID: userID,
		Mood:   mood,
		Note:   note,
	}
	query := `INSERT INTO moods (user_id, mood, note)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	err := s.pool.QueryRow(ctx, query, userID, string(mood), note).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *pgStore) ListEntriesByUser(ctx context.Context, userID string) ([]Entry, error) {
	query := `SELECT id, user_id, mood, note, created_at
	          FROM moods WHERE user_id = $1
	          ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var mood string
		if err := rows.Scan(&e.ID, &e.UserID, &mood, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Mood = Mood(mood)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *pgStore) LatestMoodByUser(ctx context.Context, userID string) (Mood, bool, error) {
	query := `SELECT mood FROM moods WHERE user_id = $1
	          ORDER BY created_at DESC LIMIT 1`
	var mood string
	err := s.pool.QueryRow(ctx, query, userID).Scan(&mood)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return Mood(mood), true, nil
}

func (s *pgStore) CountByMoodSince(ctx context.Context, userID string, since time.Time) (map[Mood]int, error) {
	query := `SELECT mood, count(*) FROM moods
	          WHERE user_id = $1 AND created_at >= $2
	          GROUP BY mood`
	rows, err := s.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Mood]int)
	for rows.Next() {
		var mood string
		var count int
		if err := rows.Scan(&mood, &count); err != nil {
			return nil, err
		}
		counts[Mood(mood)] = count
	}
	return counts, rows.Err()
}
