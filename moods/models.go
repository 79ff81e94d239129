// Package moods implements mood check-ins: recording entries, listing a
// user's history, weekly aggregates, and mood-keyed wellness suggestions.
package moods

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/user/moodmoment-go/apperror"
)

// Mood is the closed set of check-in categories. Free strings from request
// bodies only become a Mood through ParseMood, so invalid categories are
// stopped at the boundary.
type Mood string

const (
	MoodStressed Mood = "stressed"
	MoodTired    Mood = "tired"
	MoodFocused  Mood = "focused"
	MoodHappy    Mood = "happy"
)

// noteMaxLen bounds the free-text note, in characters.
const noteMaxLen = 500

// ParseMood validates a raw category string against the closed enum.
func ParseMood(s string) (Mood, error) {
	switch Mood(s) {
	case MoodStressed, MoodTired, MoodFocused, MoodHappy:
		return Mood(s), nil
	}
	return "", apperror.NewValidationError(fmt.Sprintf("invalid mood category: %q", s), nil)
}

// ValidateNote bounds the optional note length.
func ValidateNote(note string) error {
	if utf8.RuneCountInString(note) > noteMaxLen {
		return apperror.NewValidationError(fmt.Sprintf("note must be at most %d characters", noteMaxLen), nil)
	}
	return nil
}

// Entry represents one mood check-in. Entries are immutable once created:
// no endpoint updates or deletes them.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Mood      Mood      `json:"mood"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
