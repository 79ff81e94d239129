// This file defines the request and response payloads for the mood endpoints.
package moods

// CreateEntryRequest represents the check-in request payload. Mood is a raw
// string here; it is validated against the closed enum before anything else
// happens.
type CreateEntryRequest struct {
	Mood string `json:"mood" example:"happy"`
	Note string `json:"note,omitempty" example:"shipped the release"`
}

// SuggestionsResponse wraps the suggestion list.
type SuggestionsResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// MoodStat is one category's share of the recent check-ins.
type MoodStat struct {
	Mood       Mood `json:"mood"`
	Count      int  `json:"count"`
	Percentage int  `json:"percentage"`
}

// StatsResponse is the weekly aggregate of a user's check-ins.
type StatsResponse struct {
	Total int        `json:"total"`
	Moods []MoodStat `json:"moods"`
}
