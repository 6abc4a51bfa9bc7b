package dto

// CreatePostRequest carries a new discussion entry. The max lengths mirror
// the sanitizer caps; the minimum lengths are re-checked after sanitization
// because stripping markup can shorten a field below its minimum.
type CreatePostRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Topic   string `json:"topic" validate:"required,min=5,max=200"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

// ForumPostCreatedMessage is the payload published on the event bus after a
// post is persisted.
type ForumPostCreatedMessage struct {
	PostId int    `json:"post_id"`
	Name   string `json:"name"`
	Topic  string `json:"topic"`
}

type ForumPostResponse struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	Topic     string `json:"topic"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
