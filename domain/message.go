// Package domain contains core concepts of the chat room.
// This file defines Message events and the per-requester visibility rule.
// Messages are immutable once appended to the log.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	// TypePublic is a broadcast message readable by everyone.
	TypePublic MessageType = "message"
	// TypePrivate is readable only by its sender and the named recipient.
	TypePrivate MessageType = "private_message"
	// TypeStatus is a system-generated join/leave notice, always broadcast.
	TypeStatus MessageType = "status"
)

// Broadcast is the reserved destination meaning "everyone".
const Broadcast = "Todos"

// TimeLayout is the human-readable stamp carried on every message.
// It is display-only; ordering comes from the log's insertion order.
const TimeLayout = "15:04:05"

const (
	EnteredRoomText = "entered room"
	LeftRoomText    = "left room"
)

// Message is an immutable chat event. From and To reference participant
// names by value: a participant may be reaped while its messages persist.
type Message struct {
	ID   uuid.UUID   `json:"id"`
	From string      `json:"from"`
	To   string      `json:"to"`
	Text string      `json:"text"`
	Type MessageType `json:"type"`
	Time string      `json:"time"`
}

// NewStatus builds a system notice broadcast to the whole room.
func NewStatus(name, text string, at time.Time) Message {
	return Message{
		ID:   uuid.New(),
		From: name,
		To:   Broadcast,
		Text: text,
		Type: TypeStatus,
		Time: at.Format(TimeLayout),
	}
}

// VisibleTo reports whether the requester is allowed to read the message:
// their own messages, anything public, and private messages addressed to
// them. Senders keep visibility into private messages they authored.
func (m Message) VisibleTo(requester string) bool {
	switch {
	case m.From == requester:
		return true
	case m.Type == TypePublic || m.Type == TypeStatus:
		return true
	case m.Type == TypePrivate && m.To == requester:
		return true
	}
	return false
}

// UserFacing reports whether a message type may be submitted by a client.
// Status notices are reserved for the system.
func UserFacing(t MessageType) bool {
	return t == TypePublic || t == TypePrivate
}
