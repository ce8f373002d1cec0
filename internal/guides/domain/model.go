package domain

import "errors"

var ErrRelationUnknown = errors.New("no relation recorded for user")

// Guide is a CMS content item tagged for matching against a user's
// personalization answers.
type Guide struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary,omitempty"`
	Content  string   `json:"content,omitempty"`
	Relation string   `json:"relation"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Tags     []string `json:"tags"`
	HelpTags []string `json:"helpTags"`
}
