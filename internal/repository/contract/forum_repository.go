package contract

import (
	"crop-advisor-be/internal/entity"
)

// IForumRepository is the persistence boundary for forum posts. The store is
// a single file: Load always returns the full newest-first sequence and Save
// rewrites it wholesale.
type IForumRepository interface {
	// Load returns every persisted post. A missing, unreadable or corrupt
	// file is a recoverable condition and yields an empty slice.
	Load() []entity.ForumPost

	// Save persists the full sequence. Returns false on any I/O failure
	// instead of propagating an error.
	Save(posts []entity.ForumPost) bool
}
