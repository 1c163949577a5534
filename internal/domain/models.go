// Package domain contains the core domain types for the dictionary lookup.
package domain

// SearchResult is one headword with its translations, in the order the
// dictionary returned them. Translations may be empty.
type SearchResult struct {
	Word         string   `json:"word"`
	Translations []string `json:"translations"`
}

// ActionKind tells the host which side effect to perform with an action URL.
type ActionKind string

const (
	ActionOpenURL       ActionKind = "open_url"
	ActionCopyClipboard ActionKind = "copy_to_clipboard"
)

// Action is a data-only description of a user action on a result item.
// The host interprets Kind and performs the side effect with URL.
type Action struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Kind        ActionKind `json:"kind"`
	URL         string     `json:"url"`
}

// Item is a presentable launcher result.
type Item struct {
	ID              string   `json:"id"`
	Text            string   `json:"text"`
	Subtext         string   `json:"subtext"`
	InputActionText string   `json:"inputActionText,omitempty"`
	Actions         []Action `json:"actions,omitempty"`
}

// Request is the input to the lookup Lambda.
type Request struct {
	Query string `json:"query"`
}

// Response is the output from the lookup Lambda.
type Response struct {
	Items []Item `json:"items"`
	Error string `json:"error,omitempty"`
}
