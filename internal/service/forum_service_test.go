package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"crop-advisor-be/internal/pkg/logger"
	"crop-advisor-be/internal/repository/implementation"
)

func newTestForumService(t *testing.T, maxPosts int) IForumService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forum_data.json")
	repo := implementation.NewForumRepository(path, logger.NopLogger{})
	return NewForumService(repo, nil, logger.NopLogger{}, maxPosts)
}

func TestAddPostValidation(t *testing.T) {
	svc := newTestForumService(t, 100)

	tests := []struct {
		name    string
		author  string
		topic   string
		message string
		want    bool
	}{
		{"valid post", "Ravi", "Soil health", "What cover crop works after paddy harvest?", true},
		{"author too short", "A", "Soil health", "What cover crop works after paddy harvest?", false},
		{"topic too short", "Ravi", "Soil", "What cover crop works after paddy harvest?", false},
		{"message too short", "Ravi", "Soil health", "Too short", false},
		{"empty fields", "", "", "", false},
		{"markup-only author rejected", "<b></b>", "Soil health", "What cover crop works after paddy harvest?", false},
		{"markup stripped but still valid", "<b>Ravi Kumar</b>", "Soil health", "What cover crop works after paddy harvest?", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.AddPost(tt.author, tt.topic, tt.message))
		})
	}
}

func TestAddPostSanitizesStoredFields(t *testing.T) {
	svc := newTestForumService(t, 100)

	ok := svc.AddPost("<i>Anita</i>", "Pest <script>control</script> tips", "Neem oil spray worked well on my <b>chilli</b> plants this year.")
	assert.True(t, ok)

	posts := svc.GetPosts(10)
	if assert.Len(t, posts, 1) {
		assert.Equal(t, "Anita", posts[0].Name)
		assert.Equal(t, "Pest control tips", posts[0].Topic)
		assert.Equal(t, "Neem oil spray worked well on my chilli plants this year.", posts[0].Message)
	}
}

func TestAddPostLongFieldsTruncated(t *testing.T) {
	svc := newTestForumService(t, 100)

	ok := svc.AddPost(strings.Repeat("n", 300), strings.Repeat("t", 300), strings.Repeat("m", 2000))
	assert.True(t, ok)

	posts := svc.GetPosts(1)
	if assert.Len(t, posts, 1) {
		assert.Len(t, posts[0].Name, 100)
		assert.Len(t, posts[0].Topic, 200)
		assert.Len(t, posts[0].Message, 1000)
	}
}

func TestGetPostsNewestFirst(t *testing.T) {
	svc := newTestForumService(t, 100)

	assert.True(t, svc.AddPost("Ravi", "First topic", "The very first question on this board."))
	assert.True(t, svc.AddPost("Anita", "Second topic", "A newer question that should come first."))

	posts := svc.GetPosts(10)
	if assert.Len(t, posts, 2) {
		assert.Equal(t, "Second topic", posts[0].Topic)
		assert.Equal(t, "First topic", posts[1].Topic)
	}
}

func TestGetPostsLimit(t *testing.T) {
	svc := newTestForumService(t, 100)
	for i := 0; i < 5; i++ {
		assert.True(t, svc.AddPost("Ravi", fmt.Sprintf("Topic number %d", i), "A question long enough to pass validation."))
	}

	assert.Len(t, svc.GetPosts(3), 3)
	assert.Len(t, svc.GetPosts(0), 5)
	assert.Len(t, svc.GetPosts(50), 5)
	assert.Empty(t, svc.GetPosts(-1))
}

func TestAddPostEvictsOldestBeyondCap(t *testing.T) {
	svc := newTestForumService(t, 100)

	for i := 1; i <= 105; i++ {
		ok := svc.AddPost("Ravi", fmt.Sprintf("Topic number %d", i), "A question long enough to pass validation.")
		assert.True(t, ok)
	}

	posts := svc.GetPosts(0)
	if assert.Len(t, posts, 100) {
		assert.Equal(t, "Topic number 105", posts[0].Topic)
		assert.Equal(t, "Topic number 6", posts[99].Topic)
	}
}
