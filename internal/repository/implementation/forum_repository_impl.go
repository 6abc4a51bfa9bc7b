package implementation

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"crop-advisor-be/internal/entity"
	"crop-advisor-be/internal/pkg/logger"
	"crop-advisor-be/internal/repository/contract"
)

type forumRepository struct {
	filePath string
	logger   logger.ILogger
}

func NewForumRepository(filePath string, log logger.ILogger) contract.IForumRepository {
	return &forumRepository{
		filePath: filePath,
		logger:   log,
	}
}

func (r *forumRepository) Load() []entity.ForumPost {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("ForumRepository", "Forum file unreadable, treating as empty", map[string]interface{}{
				"path":  r.filePath,
				"error": err.Error(),
			})
		}
		return []entity.ForumPost{}
	}

	var posts []entity.ForumPost
	if err := json.Unmarshal(data, &posts); err != nil {
		r.logger.Warn("ForumRepository", "Forum file corrupt, treating as empty", map[string]interface{}{
			"path":  r.filePath,
			"error": err.Error(),
		})
		return []entity.ForumPost{}
	}

	return posts
}

func (r *forumRepository) Save(posts []entity.ForumPost) bool {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Keep the file human-readable and non-ASCII text verbatim.
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(posts); err != nil {
		r.logger.Error("ForumRepository", "Failed to encode forum posts", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}

	// Write-then-rename so a crash mid-save never leaves a half-written file
	// behind. The rename is atomic on the same filesystem.
	tmp := r.filePath + ".tmp"
	if err := os.MkdirAll(filepath.Dir(r.filePath), 0o755); err != nil {
		r.logger.Error("ForumRepository", "Failed to create forum directory", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		r.logger.Error("ForumRepository", "Failed to write forum file", map[string]interface{}{
			"path":  tmp,
			"error": err.Error(),
		})
		return false
	}
	if err := os.Rename(tmp, r.filePath); err != nil {
		r.logger.Error("ForumRepository", "Failed to replace forum file", map[string]interface{}{
			"path":  r.filePath,
			"error": err.Error(),
		})
		return false
	}

	return true
}
