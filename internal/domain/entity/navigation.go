package entity

// NavRoute is one screen of the navigation surface.
type NavRoute struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// TimelineItem is a project milestone shown on the landing screen.
type TimelineItem struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	RelatedIDs []int  `json:"relatedIds"`
	Status     string `json:"status"`
	Energy     int    `json:"energy"`
}

// LandingContent is the static marketing content of the landing screen.
type LandingContent struct {
	Tagline   string         `json:"tagline"`
	Headline  []string       `json:"headline"`
	Highlight Highlight      `json:"highlight"`
	Timeline  []TimelineItem `json:"timeline"`
}

// Highlight is a titled paragraph on the landing screen.
type Highlight struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ThemePreference is the persisted dark/light choice.
type ThemePreference struct {
	Dark bool `json:"dark"`
}
