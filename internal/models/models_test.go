package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewSession(t *testing.T) {
	s := NewSession()

	if s.ID == "" {
		t.Error("session ID is empty")
	}
	if s.Title != DefaultSessionTitle {
		t.Errorf("Title = %s, want %s", s.Title, DefaultSessionTitle)
	}
	if s.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
	if len(s.Messages) != 0 {
		t.Errorf("expected 0 messages, got %d", len(s.Messages))
	}
}

func TestNewSession_UniqueIDs(t *testing.T) {
	a := NewSession()
	b := NewSession()

	if a.ID == b.ID {
		t.Error("two sessions share an ID")
	}
}

func TestSession_Append(t *testing.T) {
	s := NewSession()

	s.Append(NewUserMessage("hello", "", ""))
	s.Append(NewAssistantMessage([]byte(`{"summary":"ok"}`)))

	if len(s.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(s.Messages))
	}
	if s.Messages[0].Role != RoleUser {
		t.Errorf("first role = %s, want %s", s.Messages[0].Role, RoleUser)
	}
	if s.Messages[1].Role != RoleAssistant {
		t.Errorf("second role = %s, want %s", s.Messages[1].Role, RoleAssistant)
	}
}

func TestTitleFromText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short text", "Is this real?", "Is this real?"},
		{"blank", "   ", DefaultSessionTitle},
		{"empty", "", DefaultSessionTitle},
		{"truncated", strings.Repeat("a", 40), strings.Repeat("a", 30)},
		{"exactly thirty", strings.Repeat("b", 30), strings.Repeat("b", 30)},
		{"trimmed", "  hello  ", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFromText(tt.text); got != tt.want {
				t.Errorf("TitleFromText(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestTitleFromText_MultibyteSafe(t *testing.T) {
	text := strings.Repeat("é", 35)
	got := TitleFromText(text)

	if got != strings.Repeat("é", 30) {
		t.Errorf("multibyte truncation broke a rune boundary: %q", got)
	}
}

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("check this", "photo.jpg", "")

	if msg.Role != RoleUser {
		t.Errorf("Role = %s, want %s", msg.Role, RoleUser)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp is zero")
	}
	if !msg.HasAttachment() {
		t.Error("message with image should report an attachment")
	}
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage("analysis request failed [500]")

	if msg.Role != RoleError {
		t.Errorf("Role = %s, want %s", msg.Role, RoleError)
	}
	if msg.Diagnostic == "" {
		t.Error("Diagnostic is empty")
	}
}

func TestMessage_JSONRoundTrip(t *testing.T) {
	original := NewAssistantMessage([]byte(`{"results":{"bias":{"label":"Biased","score":0.82}}}`))

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.Role != RoleAssistant {
		t.Errorf("Role = %s, want %s", decoded.Role, RoleAssistant)
	}
	if string(decoded.Payload) != string(original.Payload) {
		t.Errorf("payload changed across round trip: %s", decoded.Payload)
	}
}
