package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTitle is the label given to a session before a first
// text submission settles its title.
const DefaultSessionTitle = "New Analysis"

// titleMaxLen caps titles derived from submitted text.
const titleMaxLen = 30

// Session is one independent conversation thread with its own ordered
// message timeline.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Messages  []Message `json:"messages"`
}

// NewSession creates an empty session with the default title.
func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		Title:     DefaultSessionTitle,
		CreatedAt: time.Now(),
		Messages:  []Message{},
	}
}

// Append adds a message to the end of the timeline.
func (s *Session) Append(msg Message) {
	s.Messages = append(s.Messages, msg)
}

// Clone returns a deep copy whose timeline is independent of the original.
func (s *Session) Clone() *Session {
	out := *s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return &out
}

// HasDefaultTitle reports whether the title has not yet been derived
// from submitted text.
func (s *Session) HasDefaultTitle() bool {
	return s.Title == DefaultSessionTitle
}

// TitleFromText derives a session title from submitted text: the first
// 30 characters, or the default label when the text is blank.
func TitleFromText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultSessionTitle
	}

	runes := []rune(text)
	if len(runes) > titleMaxLen {
		return string(runes[:titleMaxLen])
	}
	return text
}
