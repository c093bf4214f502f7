// Package memory provides a bounded conversation buffer for the chatbot:
// a fixed-size window of conversation turns with oldest-first eviction.
package memory

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidWindowSize is returned when a window size is zero or negative.
var ErrInvalidWindowSize = errors.New("memory window size must be positive")

// Role identifies who produced a message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one utterance in the conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Turn    int    `json:"turn"`
}

// Status is a point-in-time report of the buffer's state.
type Status struct {
	CurrentTurn int  `json:"current_turn"`
	Messages    int  `json:"total_messages"`
	Turns       int  `json:"conversation_turns"`
	WindowSize  int  `json:"memory_window_size"`
	Full        bool `json:"is_memory_full"`
}

// Window keeps the most recent conversation turns. A turn is a user message
// and the assistant reply that follows it; once the window holds more than
// its configured number of turns, the oldest turn pair is evicted. Safe for
// concurrent use.
type Window struct {
	mu       sync.Mutex
	size     int // turns kept
	messages []Message
	turn     int // 1-based turn counter, never reset by eviction
}

// NewWindow creates a buffer remembering the last size conversation turns.
func NewWindow(size int) (*Window, error) {
	if size <= 0 {
		return nil, ErrInvalidWindowSize
	}
	return &Window{size: size}, nil
}

// AddUserMessage records a user message, starting a new turn.
func (w *Window) AddUserMessage(content string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.turn++
	w.messages = append(w.messages, Message{Role: RoleUser, Content: content, Turn: w.turn})
	w.evict()
}

// AddAssistantMessage records the assistant's reply to the current turn.
func (w *Window) AddAssistantMessage(content string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.messages = append(w.messages, Message{Role: RoleAssistant, Content: content, Turn: w.turn})
	w.evict()
}

// evict drops the oldest turn's messages while more than size turns are
// buffered. Must be called with the mutex held.
func (w *Window) evict() {
	for w.turnCount() > w.size {
		oldest := w.messages[0].Turn
		i := 0
		for i < len(w.messages) && w.messages[i].Turn == oldest {
			i++
		}
		w.messages = append([]Message(nil), w.messages[i:]...)
	}
}

// turnCount returns the number of distinct turns buffered.
// Must be called with the mutex held.
func (w *Window) turnCount() int {
	if len(w.messages) == 0 {
		return 0
	}
	return w.messages[len(w.messages)-1].Turn - w.messages[0].Turn + 1
}

// History returns a snapshot of the buffered messages, oldest first.
func (w *Window) History() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()

	return append([]Message(nil), w.messages...)
}

// Context renders the buffered conversation as a transcript suitable for
// inclusion in a prompt. Empty when nothing is buffered.
func (w *Window) Context() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.messages) == 0 {
		return ""
	}

	var b strings.Builder
	for i, msg := range w.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		speaker := "User"
		if msg.Role == RoleAssistant {
			speaker = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s", speaker, msg.Content)
	}
	return b.String()
}

// Clear discards all buffered messages and resets the turn counter.
func (w *Window) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.messages = nil
	w.turn = 0
}

// CurrentTurn returns the 1-based number of the most recently started turn,
// or zero before the first user message.
func (w *Window) CurrentTurn() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.turn
}

// Status reports the buffer's state.
func (w *Window) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	turns := w.turnCount()
	return Status{
		CurrentTurn: w.turn,
		Messages:    len(w.messages),
		Turns:       turns,
		WindowSize:  w.size,
		Full:        turns >= w.size,
	}
}
