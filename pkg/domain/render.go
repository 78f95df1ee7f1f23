package domain

// RenderModel is what the host shows for the current branch. All text is
// already interpolated against the live environment.
type RenderModel struct {
	// Story is the document's title; Title is the current branch's.
	Story      string         `json:"story"`
	Title      string         `json:"title"`
	Paragraphs []string       `json:"paragraphs"`
	Choices    []RenderChoice `json:"choices"`

	// Ended is true when the branch offers no enabled choice. EndingText
	// carries the story's interpolated ending text in that case.
	Ended      bool   `json:"ended"`
	EndingText string `json:"endingText,omitempty"`
}

// RenderChoice is one choice of the current branch, in declaration order.
// Disabled choices are included; the host decides whether to show them
// (see Document.ShowDisabled).
type RenderChoice struct {
	Text    string `json:"text"`
	Enabled bool   `json:"enabled"`
}
