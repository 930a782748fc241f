// Package models contains data types for VeriWise analysis sessions.
package models

import (
	"encoding/json"
	"time"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleError     = "error"
)

// Message is one entry in a session timeline. The timeline is append-only:
// messages are never mutated or removed once recorded.
//
// Exactly one of the role-specific field groups is populated:
//   - user: Text and/or ImageName/VideoName
//   - assistant: Payload (the raw analysis response)
//   - error: Diagnostic
type Message struct {
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// User fields
	Text      string `json:"text,omitempty"`
	ImageName string `json:"image_name,omitempty"`
	VideoName string `json:"video_name,omitempty"`

	// Assistant field: raw JSON body returned by the analysis service.
	// Kept verbatim so display sections can be recomputed at any time.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Error field
	Diagnostic string `json:"diagnostic,omitempty"`
}

// NewUserMessage creates a user message from the submitted input.
func NewUserMessage(text, imageName, videoName string) Message {
	return Message{
		Role:      RoleUser,
		Timestamp: time.Now(),
		Text:      text,
		ImageName: imageName,
		VideoName: videoName,
	}
}

// NewAssistantMessage creates an assistant message holding the raw response.
func NewAssistantMessage(payload []byte) Message {
	return Message{
		Role:      RoleAssistant,
		Timestamp: time.Now(),
		Payload:   json.RawMessage(payload),
	}
}

// NewErrorMessage creates an error message with a human-readable diagnostic.
func NewErrorMessage(diagnostic string) Message {
	return Message{
		Role:       RoleError,
		Timestamp:  time.Now(),
		Diagnostic: diagnostic,
	}
}

// HasAttachment reports whether the user message carried an image or video.
func (m Message) HasAttachment() bool {
	return m.ImageName != "" || m.VideoName != ""
}
