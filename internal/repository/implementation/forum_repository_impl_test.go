package implementation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"crop-advisor-be/internal/entity"
	"crop-advisor-be/internal/pkg/logger"
)

func TestForumRepositoryLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file yields empty slice", func(t *testing.T) {
		repo := NewForumRepository(filepath.Join(dir, "absent.json"), logger.NopLogger{})
		posts := repo.Load()
		if posts == nil {
			t.Fatal("Load returned nil, want empty slice")
		}
		if len(posts) != 0 {
			t.Errorf("Load returned %d posts, want 0", len(posts))
		}
	})

	t.Run("corrupt file yields empty slice", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.json")
		if err := os.WriteFile(path, []byte("{{{garbage"), 0o644); err != nil {
			t.Fatal(err)
		}
		repo := NewForumRepository(path, logger.NopLogger{})
		if got := repo.Load(); len(got) != 0 {
			t.Errorf("Load returned %d posts, want 0", len(got))
		}
	})
}

func TestForumRepositorySaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forum", "forum_data.json")
	repo := NewForumRepository(path, logger.NopLogger{})

	posts := []entity.ForumPost{
		{
			Id:        2,
			Name:      "రైతు మిత్ర",
			Topic:     "వరి సాగు",
			Message:   "5 < 6 & coffee > tea",
			Timestamp: "2026-09-01 10:30:00",
			Replies:   []entity.ForumReply{},
		},
		{
			Id:        1,
			Name:      "Ravi",
			Topic:     "Irrigation",
			Message:   "Drip lines halved my water bill.",
			Timestamp: "2026-09-01 09:00:00",
			Replies:   []entity.ForumReply{},
		},
	}

	if !repo.Save(posts) {
		t.Fatal("Save returned false")
	}

	got := repo.Load()
	if len(got) != 2 {
		t.Fatalf("Load returned %d posts, want 2", len(got))
	}
	if got[0].Name != "రైతు మిత్ర" || got[0].Topic != "వరి సాగు" {
		t.Errorf("non-ASCII text not preserved: %+v", got[0])
	}
	if got[0].Message != "5 < 6 & coffee > tea" {
		t.Errorf("message altered: %q", got[0].Message)
	}
	if got[1].Id != 1 || got[1].Timestamp != "2026-09-01 09:00:00" {
		t.Errorf("second post not preserved: %+v", got[1])
	}
}

func TestForumRepositoryFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forum_data.json")
	repo := NewForumRepository(path, logger.NopLogger{})

	posts := []entity.ForumPost{{
		Id:        1,
		Name:      "తెలుగు",
		Topic:     "Soil & water",
		Message:   "hello",
		Timestamp: "2026-09-01 12:00:00",
		Replies:   []entity.ForumReply{},
	}}
	if !repo.Save(posts) {
		t.Fatal("Save returned false")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(raw)

	if !strings.Contains(content, "తెలుగు") {
		t.Error("non-ASCII characters were escaped in the file")
	}
	if strings.Contains(content, `&`) {
		t.Error("ampersand was HTML-escaped in the file")
	}
	if !strings.Contains(content, "\n  ") {
		t.Error("file is not indented")
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind after save")
	}
}

func TestForumRepositorySaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forum_data.json")
	repo := NewForumRepository(path, logger.NopLogger{})

	first := []entity.ForumPost{{Id: 1, Name: "aa", Topic: "topic", Message: "msg", Replies: []entity.ForumReply{}}}
	second := []entity.ForumPost{
		{Id: 2, Name: "bb", Topic: "topic", Message: "msg", Replies: []entity.ForumReply{}},
		{Id: 1, Name: "aa", Topic: "topic", Message: "msg", Replies: []entity.ForumReply{}},
	}

	if !repo.Save(first) || !repo.Save(second) {
		t.Fatal("Save returned false")
	}

	got := repo.Load()
	if len(got) != 2 || got[0].Id != 2 {
		t.Errorf("overwrite failed, got %+v", got)
	}
}
