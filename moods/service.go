// This file contains the business logic for mood check-ins, suggestions, and
// weekly statistics.
package moods

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/user/moodmoment-go/apperror"
)

// statsWindow is the look-back period for the weekly aggregate.
const statsWindow = 7 * 24 * time.Hour

// Service provides mood operations on top of the entry store.
type Service struct {
	store Store
}

// NewService creates a new moods Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// AddEntry validates and records a check-in for the given user.
func (s *Service) AddEntry(ctx context.Context, userID string, req CreateEntryRequest) (*Entry, error) {
	mood, err := ParseMood(req.Mood)
	if err != nil {
		return nil, err
	}
	if err := ValidateNote(req.Note); err != nil {
		return nil, err
	}

	entry, err := s.store.CreateEntry(ctx, userID, mood, req.Note)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create mood entry", err)
	}
	return entry, nil
}

// ListEntries returns the user's check-ins, most recent first.
func (s *Service) ListEntries(ctx context.Context, userID string) ([]Entry, error) {
	entries, err := s.store.ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to fetch moods", err)
	}
	return entries, nil
}

// Suggest returns the wellness suggestions keyed by the user's most recent
// mood, or the default set when the user has no check-ins.
func (s *Service) Suggest(ctx context.Context, userID string) ([]Suggestion, error) {
	latest, found, err := s.store.LatestMoodByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to fetch latest mood", err)
	}
	if !found {
		return DefaultSuggestions(), nil
	}
	return SuggestionsFor(latest), nil
}

// WeeklyStats aggregates the user's check-ins over the last seven days into
// per-category counts and percentages, sorted by count descending.
func (s *Service) WeeklyStats(ctx context.Context, userID string) (*StatsResponse, error) {
	since := time.Now().Add(-statsWindow)
	counts, err := s.store.CountByMoodSince(ctx, userID, since)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to aggregate moods", err)
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	stats := make([]MoodStat, 0, len(counts))
	for mood, count := range counts {
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(count) / float64(total) * 100))
		}
		stats = append(stats, MoodStat{Mood: mood, Count: count, Percentage: pct})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Mood < stats[j].Mood
	})

	return &StatsResponse{Total: total, Moods: stats}, nil
}
