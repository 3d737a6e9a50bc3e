package docsync

import "github.com/mesh-intelligence/kanban/pkg/types"

// MessageType discriminates Message values on the wire.
type MessageType string

// Message types.
const (
	TypeLoad   MessageType = "load"
	TypeUpdate MessageType = "update"
	TypeEdit   MessageType = "edit"
	TypeInfo   MessageType = "info-message"
	TypeOpen   MessageType = "open"
)

// Message is one protocol message. Which payload fields are set depends on
// Type: update carries Title and Text, edit carries Kanban, info-message
// carries Message and open carries URL.
type Message struct {
	Type    MessageType  `json:"type"`
	Title   string       `json:"title,omitempty"`
	Text    string       `json:"text,omitempty"`
	Kanban  *types.Board `json:"kanban,omitempty"`
	Message string       `json:"message,omitempty"`
	URL     string       `json:"url,omitempty"`
}

// LoadMessage asks the authority for the document.
func LoadMessage() Message { return Message{Type: TypeLoad} }

// UpdateMessage carries the full document text and its display title.
func UpdateMessage(title, text string) Message {
	return Message{Type: TypeUpdate, Title: title, Text: text}
}

// EditMessage carries a full board snapshot to be persisted.
func EditMessage(b types.Board) Message {
	return Message{Type: TypeEdit, Kanban: &b}
}

// InfoMessage carries a notification for the operator.
func InfoMessage(text string) Message {
	return Message{Type: TypeInfo, Message: text}
}

// OpenMessage asks the host to open a link.
func OpenMessage(url string) Message {
	return Message{Type: TypeOpen, URL: url}
}
