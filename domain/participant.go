// Package domain contains core concepts of the chat room.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

// Participant is a presence record. LastStatus is wall-clock milliseconds of
// the last confirmed activity; the reaper compares it against the TTL window.
// At most one participant exists per name at any time (best effort, see
// services.PresenceService for how registration is serialized).
type Participant struct {
	Name       string `json:"name"`
	LastStatus int64  `json:"lastStatus"`
}
