package models

// MessageRecord mirrors the wire shape of a chat message.
type MessageRecord struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
	Read       bool   `json:"read"`
}

// Message is a chat message as the views consume it. Messages are held as a
// flat sequence and filtered to the active conversation at render time.
type Message struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Text       string
	Timestamp  int64
	Read       bool
}

func MessageFromRecord(rec MessageRecord) Message {
	return Message(rec)
}
