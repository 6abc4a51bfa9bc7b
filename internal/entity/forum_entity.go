package entity

// TimestampLayout is the wire format of ForumPost.Timestamp inside the forum
// file. Kept as a plain string so the persisted JSON stays human-readable
// and byte-stable across load/save round trips.
const TimestampLayout = "2006-01-02 15:04:05"

// ForumPost is one user-submitted discussion entry as persisted in the
// forum file.
type ForumPost struct {
	Id        int          `json:"id"`
	Name      string       `json:"name"`
	Topic     string       `json:"topic"`
	Message   string       `json:"message"`
	Timestamp string       `json:"timestamp"`
	Replies   []ForumReply `json:"replies"`
}

// ForumReply is reserved for threaded replies. Nothing writes replies today,
// but the field is kept in the file format so existing data stays valid when
// threading lands.
type ForumReply struct {
	Name      string `json:"name"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
