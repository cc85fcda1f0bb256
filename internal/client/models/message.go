// Package models defines client-side data types used by the chattr client.
package models

import "time"

// Author distinguishes who produced a message in a thread.
type Author string

const (
	// AuthorSelf marks messages composed by the signed-in user.
	AuthorSelf Author = "self"
	// AuthorPeer marks messages from the remote counterpart.
	AuthorPeer Author = "peer"
)

// Message is a single chat message. Messages are immutable once created:
// they are appended to a thread, never edited or deleted in place.
type Message struct {
	// ID is a globally unique identifier for the message.
	ID string `json:"id"`

	// Text is the message body.
	Text string `json:"text"`

	// CreatedAt is the creation time in UTC.
	CreatedAt time.Time `json:"createdAt"`

	// Author says whether the local user or the counterpart wrote it.
	Author Author `json:"author"`
}
