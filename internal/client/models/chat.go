package models

// Chat is one conversation as the remote API lists it: identity, display
// name, participants, and the most recent message (the API trims the message
// list to the latest one for the overview screen).
type Chat struct {
	UUID     string    `json:"uuid"`
	Name     string    `json:"name"`
	Users    []string  `json:"users"`
	Messages []Message `json:"messages"`
}

// LastMessage returns the newest message of the chat overview, or nil when
// the conversation is still empty.
func (c *Chat) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}
