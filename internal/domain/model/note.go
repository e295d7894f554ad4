package model

import (
	"time"
)

const previewRuneLimit = 50

type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Preview returns the note text truncated for list views.
func (n *Note) Preview() string {
	runes := []rune(n.Text)
	if len(runes) > previewRuneLimit {
		return string(runes[:previewRuneLimit]) + "..."
	}
	return n.Text
}
