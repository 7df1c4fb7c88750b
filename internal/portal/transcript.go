package portal

import (
	"errors"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

type ChatMessage struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

var (
	ErrExchangeInFlight  = errors.New("an exchange is already in flight")
	ErrNoPendingExchange = errors.New("no exchange in flight")
)

// Transcript is an append-only chat log with a two-phase tail: the user's
// turn is shown as Pending until the agent answers (Confirm) or the call
// fails (Fail). Either way the user's turn stays; only Confirm adds an agent
// message.
type Transcript struct {
	Confirmed []ChatMessage `json:"confirmed"`
	Pending   *ChatMessage  `json:"pending,omitempty"`
}

// Seed replaces the log with a single opening message.
func (t *Transcript) Seed(msg ChatMessage) {
	t.Confirmed = []ChatMessage{msg}
	t.Pending = nil
}

func (t *Transcript) Begin(msg ChatMessage) error {
	if t.Pending != nil {
		return ErrExchangeInFlight
	}
	m := msg
	t.Pending = &m
	return nil
}

func (t *Transcript) Confirm(reply ChatMessage) error {
	if t.Pending == nil {
		return ErrNoPendingExchange
	}
	t.Confirmed = append(t.Confirmed, *t.Pending, reply)
	t.Pending = nil
	return nil
}

func (t *Transcript) Fail() error {
	if t.Pending == nil {
		return ErrNoPendingExchange
	}
	t.Confirmed = append(t.Confirmed, *t.Pending)
	t.Pending = nil
	return nil
}

// Messages returns confirmed messages followed by the pending one, if any.
func (t *Transcript) Messages() []ChatMessage {
	out := make([]ChatMessage, 0, len(t.Confirmed)+1)
	out = append(out, t.Confirmed...)
	if t.Pending != nil {
		out = append(out, *t.Pending)
	}
	return out
}

func (t *Transcript) Len() int {
	n := len(t.Confirmed)
	if t.Pending != nil {
		n++
	}
	return n
}

func (t *Transcript) Reset() {
	t.Confirmed = nil
	t.Pending = nil
}
