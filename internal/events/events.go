package events

import (
	"context"
	"time"
)

// Event type names published by the matching service.
const (
	EventUserRegistered        = "user.registered"
	EventProfileUpdated        = "user.profile_updated"
	EventMatchRequestCreated   = "match_request.created"
	EventMatchRequestAccepted  = "match_request.accepted"
	EventMatchRequestRejected  = "match_request.rejected"
	EventMatchRequestCancelled = "match_request.cancelled"
	EventMeetingScheduled      = "meeting.scheduled"
	EventMeetingUpdated        = "meeting.updated"
	EventMeetingCancelled      = "meeting.cancelled"
)

// Event is the envelope for all messages published to the event bus.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// EventPublisher publishes domain events to the configured transport.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
