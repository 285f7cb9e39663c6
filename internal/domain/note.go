package domain

import "time"

// Note is a free-form field note. It is not owned by a project; exports
// attach notes to a project by keyword matching only.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Images      []string  `json:"images"`
}

type NoteInput struct {
	Title       string
	Description string
	Location    string
	Tags        []string
	Content     string
}

type NotePatch struct {
	Title       *string
	Description *string
	Location    *string
	Tags        []string
	Content     *string
}

func (patch NotePatch) Apply(n *Note) {
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Description != nil {
		n.Description = *patch.Description
	}
	if patch.Location != nil {
		n.Location = *patch.Location
	}
	if patch.Tags != nil {
		n.Tags = append([]string(nil), patch.Tags...)
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
}
