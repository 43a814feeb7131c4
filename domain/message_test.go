package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMessage_VisibleTo(t *testing.T) {
	cases := []struct {
		name      string
		message   Message
		requester string
		visible   bool
	}{
		{"public visible to anyone", Message{From: "Ana", To: Broadcast, Type: TypePublic}, "Bob", true},
		{"status visible to anyone", Message{From: "Ana", To: Broadcast, Type: TypeStatus}, "Carol", true},
		{"status visible to stranger who never registered", Message{From: "Ana", To: Broadcast, Type: TypeStatus}, "Ghost", true},
		{"private visible to recipient", Message{From: "Ana", To: "Bob", Type: TypePrivate}, "Bob", true},
		{"private visible to sender", Message{From: "Ana", To: "Bob", Type: TypePrivate}, "Ana", true},
		{"private hidden from third party", Message{From: "Ana", To: "Bob", Type: TypePrivate}, "Carol", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.visible, tc.message.VisibleTo(tc.requester))
		})
	}
}

func TestNewStatus(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 2, 3, 14, 5, 6, 0, time.UTC)
	msg := NewStatus("Ana", EnteredRoomText, at)

	req.Equal("Ana", msg.From)
	req.Equal(Broadcast, msg.To)
	req.Equal(TypeStatus, msg.Type)
	req.Equal(EnteredRoomText, msg.Text)
	req.Equal("14:05:06", msg.Time)
	req.NotZero(msg.ID)
}

func TestUserFacing(t *testing.T) {
	require.True(t, UserFacing(TypePublic))
	require.True(t, UserFacing(TypePrivate))
	require.False(t, UserFacing(TypeStatus))
	require.False(t, UserFacing(MessageType("banana")))
}
