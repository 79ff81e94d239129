package moods

// Suggestion is one static wellness suggestion, keyed by mood category.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Icon        string `json:"icon"`
}

// moodSuggestions maps each mood category to its fixed suggestion set.
var moodSuggestions = map[Mood][]Suggestion{
	MoodStressed: {
		{
			Title:       "Box Breathing",
			Description: "Breathe in for 4, hold for 4, exhale for 4, hold for 4",
			Duration:    "1 min",
			Icon:        "🫁",
		},
		{
			Title:       "Neck Stretch",
			Description: "Gently roll your neck to release tension",
			Duration:    "30 sec",
			Icon:        "💆‍♀️",
		},
		{
			Title:       "Gaze Away",
			Description: "Look at something far away to rest your eyes",
			Duration:    "60 sec",
			Icon:        "👀",
		},
	},
	MoodTired: {
		{
			Title:       "Stand & Stretch",
			Description: "Stand up and do some energizing stretches",
			Duration:    "60 sec",
			Icon:        "🤸‍♂️",
		},
		{
			Title:       "Drink Water",
			Description: "Hydrate to boost your energy levels",
			Duration:    "1 min",
			Icon:        "💧",
		},
		{
			Title:       "Brisk Walk",
			Description: "Take a quick walk to get your blood flowing",
			Duration:    "2 min",
			Icon:        "🚶‍♀️",
		},
	},
	MoodFocused: {
		{
			Title:       "Plan Next Goal",
			Description: "Set a micro-goal for the next 25 minutes",
			Duration:    "2 min",
			Icon:        "🎯",
		},
		{
			Title:       "Pomodoro Break",
			Description: "Take a 5-minute break after 25 minutes of focus",
			Duration:    "5 min",
			Icon:        "⏰",
		},
		{
			Title:       "Light Hydration",
			Description: "Take small sips of water to stay hydrated",
			Duration:    "30 sec",
			Icon:        "💧",
		},
	},
	MoodHappy: {
		{
			Title:       "Maintain Flow",
			Description: "Keep up the great work and stay in the zone",
			Duration:    "0 min",
			Icon:        "🌟",
		},
		{
			Title:       "Gratitude Note",
			Description: "Write down something you're grateful for",
			Duration:    "2 min",
			Icon:        "📝",
		},
		{
			Title:       "Posture Check",
			Description: "Adjust your posture for continued comfort",
			Duration:    "30 sec",
			Icon:        "🪑",
		},
	},
}

// defaultSuggestions is served to users with no check-ins yet.
var defaultSuggestions = []Suggestion{
	{
		Title:       "Take a Deep Breath",
		Description: "Practice mindful breathing to center yourself",
		Duration:    "2 min",
		Icon:        "🫁",
	},
	{
		Title:       "Stretch Break",
		Description: "Stand up and do some gentle stretches",
		Duration:    "3 min",
		Icon:        "🤸‍♀️",
	},
	{
		Title:       "Hydrate",
		Description: "Drink a glass of water to refresh yourself",
		Duration:    "1 min",
		Icon:        "💧",
	},
}

// SuggestionsFor returns the suggestion set for a mood category, or the
// default set for an unknown category.
func SuggestionsFor(mood Mood) []Suggestion {
	if s, ok := moodSuggestions[mood]; ok {
		return s
	}
	return defaultSuggestions
}

// DefaultSuggestions returns the fallback suggestion set.
func DefaultSuggestions() []Suggestion {
	return defaultSuggestions
}
