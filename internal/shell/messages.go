package shell

import "fmt"

// Level classifies a user-facing message.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is a notice produced by a shell action.
type Message struct {
	Level Level
	Text  string
}

func (s *Shell) addf(level Level, format string, args ...any) {
	s.messages = append(s.messages, Message{Level: level, Text: fmt.Sprintf(format, args...)})
}

// Messages returns and clears the pending messages.
func (s *Shell) Messages() []Message {
	out := s.messages
	s.messages = nil
	return out
}

// Notify queues a message raised outside a shell action, such as a rejected request.
func (s *Shell) Notify(level Level, text string) {
	s.messages = append(s.messages, Message{Level: level, Text: text})
}
