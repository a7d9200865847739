package models

// Account event types published to Kafka.
const (
	EventUserRegistered     = "user.registered"
	EventProfileUpdated     = "user.profile_updated"
	EventAvatarReplaced     = "user.avatar_replaced"
	EventCoverImageReplaced = "user.cover_image_replaced"
)

// AccountEvent describes a change to a user account for downstream consumers.
type AccountEvent struct {
	EventID     string `json:"event_id"`               // EventID is a unique identifier for the event.
	Type        string `json:"type"`                   // Type is one of the Event* constants.
	UserID      string `json:"user_id"`                // UserID is the account the event is about.
	Timestamp   int64  `json:"timestamp"`              // Timestamp is the Unix time (seconds) of the change.
	URL         string `json:"url,omitempty"`          // URL is the new media URL for media events.
	PreviousURL string `json:"previous_url,omitempty"` // PreviousURL is the replaced media URL, left in the media store.
}
