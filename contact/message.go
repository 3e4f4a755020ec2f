package contact

import (
	"errors"
	"strings"
)

var (
	ErrIncompleteMessage = errors.New("contact: name, email and message are required")
	ErrSendInFlight      = errors.New("contact: a message is already being sent")
)

type Message struct {
	Name    string
	Email   string
	Message string
}

// Trimmed returns a copy with surrounding whitespace removed.
func (m Message) Trimmed() Message {
	return Message{
		Name:    strings.TrimSpace(m.Name),
		Email:   strings.TrimSpace(m.Email),
		Message: strings.TrimSpace(m.Message),
	}
}

func (m Message) Validate() error {
	t := m.Trimmed()
	if t.Name == "" || t.Email == "" || t.Message == "" {
		return ErrIncompleteMessage
	}
	return nil
}
