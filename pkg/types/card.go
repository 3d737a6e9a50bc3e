package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Card is a single work item. ListID names the list that currently holds
// the card; archived cards keep the id of the list they came from.
type Card struct {
	ID          string     `json:"id"`
	ListID      string     `json:"listId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Labels      []Label    `json:"labels"`
	Checkboxes  []Checkbox `json:"checkboxes"`
	Comments    []Comment  `json:"comments"`
}

// Label is a colored tag. Cards hold their own copies of catalog labels.
type Label struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color Color  `json:"color"`
}

// Checkbox is one entry of a card's task list.
type Checkbox struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Checked bool   `json:"checked"`
}

// Comment is stored newest-last.
type Comment struct {
	ID      string `json:"id"`
	Comment string `json:"comment"`
}

// NewCard returns a blank card in the given list with empty collections.
func NewCard(id, listID string) Card {
	return Card{
		ID:         id,
		ListID:     listID,
		Labels:     []Label{},
		Checkboxes: []Checkbox{},
		Comments:   []Comment{},
	}
}

// Progress returns the number of checked boxes and the total.
func (c Card) Progress() (checked, total int) {
	for _, cb := range c.Checkboxes {
		if cb.Checked {
			checked++
		}
	}
	return checked, len(c.Checkboxes)
}

// HasLabelTitle reports whether any label on the card has the given title.
func (c Card) HasLabelTitle(title string) bool {
	for _, l := range c.Labels {
		if l.Title == title {
			return true
		}
	}
	return false
}

type cardAlias Card

// UnmarshalJSON accepts every due date form ParseTimestamp understands,
// not only the RFC 3339 layout time.Time decodes on its own.
func (c *Card) UnmarshalJSON(data []byte) error {
	aux := struct {
		*cardAlias
		DueDate *string `json:"dueDate,omitempty"`
	}{cardAlias: (*cardAlias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.DueDate = nil
	if aux.DueDate != nil {
		t, err := ParseTimestamp(*aux.DueDate)
		if err != nil {
			return fmt.Errorf("dueDate: %w", err)
		}
		c.DueDate = &t
	}
	return nil
}
