package remote

import "encoding/json"

type MessageType string

const (
	// Client to server.
	TypeText    MessageType = "text"
	TypeOptions MessageType = "options"

	// Both directions: a client request for a fresh result, or the result.
	TypeSlowUpdate MessageType = "slowUpdate"

	// Server to client.
	TypeError MessageType = "error"
)

// Message is the single envelope used on the wire. Fields not relevant to
// Type are omitted.
type Message struct {
	Type MessageType `json:"type"`

	Text     string         `json:"text,omitempty"`
	Language Language       `json:"language,omitempty"`
	Options  *ServerOptions `json:"options,omitempty"`

	Diagnostics []Diagnostic    `json:"diagnostics,omitempty"`
	X           json.RawMessage `json:"x,omitempty"`

	Message string `json:"message,omitempty"`
}

// Diagnostic is one compiler or analyzer message. Offsets are rune offsets
// into the document.
type Diagnostic struct {
	ID       string `json:"id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// SlowUpdate is the result of a full service run. X carries the
// language-specific output (decompiled code, run output, flow trace) and is
// not interpreted here.
type SlowUpdate struct {
	Diagnostics []Diagnostic
	X           json.RawMessage
}

func TextMessage(text string) Message { return Message{Type: TypeText, Text: text} }

func OptionsMessage(lang Language, opts ServerOptions) Message {
	return Message{Type: TypeOptions, Language: lang, Options: &opts}
}

func SlowUpdateRequest() Message { return Message{Type: TypeSlowUpdate} }

// SlowUpdate returns the result carried by a slowUpdate message.
func (m Message) SlowUpdate() SlowUpdate {
	return SlowUpdate{Diagnostics: m.Diagnostics, X: m.X}
}
