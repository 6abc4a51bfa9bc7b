package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"crop-advisor-be/internal/dto"
	"crop-advisor-be/internal/entity"
	"crop-advisor-be/internal/pkg/logger"
	"crop-advisor-be/internal/repository/contract"
	"crop-advisor-be/pkg/events"
	"crop-advisor-be/pkg/sanitize"
)

// Field caps applied before persistence.
const (
	nameMaxLen    = 100
	topicMaxLen   = 200
	messageMaxLen = 1000

	nameMinLen    = 2
	topicMinLen   = 5
	messageMinLen = 10
)

type IForumService interface {
	// AddPost sanitizes and persists a new discussion entry. Returns false
	// when a field is rejected after sanitization or the save fails; the
	// store is left unchanged in both cases.
	AddPost(name, topic, message string) bool

	// GetPosts returns up to limit posts, newest first. Zero returns all
	// posts; negative limits return none.
	GetPosts(limit int) []dto.ForumPostResponse
}

type forumService struct {
	repo      contract.IForumRepository
	publisher message.Publisher
	logger    logger.ILogger
	maxPosts  int

	// Serializes the load-modify-save cycle within this process. The file
	// itself has no cross-process lock; the deployment assumption is a
	// single writer process.
	mu sync.Mutex
}

func NewForumService(repo contract.IForumRepository, publisher message.Publisher, log logger.ILogger, maxPosts int) IForumService {
	return &forumService{
		repo:      repo,
		publisher: publisher,
		logger:    log,
		maxPosts:  maxPosts,
	}
}

func (s *forumService) AddPost(name, topic, msg string) bool {
	name = sanitize.Clean(name, nameMaxLen)
	topic = sanitize.Clean(topic, topicMaxLen)
	msg = sanitize.Clean(msg, messageMaxLen)

	// Minimums re-checked after sanitization: stripping markup can leave a
	// field shorter than the form allowed.
	if len([]rune(name)) < nameMinLen || len([]rune(topic)) < topicMinLen || len([]rune(msg)) < messageMinLen {
		s.logger.Warn("ForumService", "Post rejected by validation", map[string]interface{}{
			"name_len":    len(name),
			"topic_len":   len(topic),
			"message_len": len(msg),
		})
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.repo.Load()

	newPost := entity.ForumPost{
		Id:        len(posts) + 1,
		Name:      name,
		Topic:     topic,
		Message:   msg,
		Timestamp: time.Now().Format(entity.TimestampLayout),
		Replies:   []entity.ForumReply{},
	}

	// Newest first.
	posts = append([]entity.ForumPost{newPost}, posts...)

	if len(posts) > s.maxPosts {
		posts = posts[:s.maxPosts]
	}

	if !s.repo.Save(posts) {
		return false
	}

	s.publishCreated(newPost)
	return true
}

func (s *forumService) GetPosts(limit int) []dto.ForumPostResponse {
	// Zero means everything; a negative limit is invalid rather than a way
	// to bypass paging.
	if limit < 0 {
		return []dto.ForumPostResponse{}
	}
	posts := s.repo.Load()
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}

	responses := make([]dto.ForumPostResponse, len(posts))
	for i, p := range posts {
		responses[i] = dto.ForumPostResponse{
			Id:        p.Id,
			Name:      p.Name,
			Topic:     p.Topic,
			Message:   p.Message,
			Timestamp: p.Timestamp,
		}
	}
	return responses
}

func (s *forumService) publishCreated(post entity.ForumPost) {
	if s.publisher == nil {
		return
	}

	ev := events.NewForumPostCreated(post.Id, post.Name, post.Topic)
	payload, err := json.Marshal(ev.Payload())
	if err != nil {
		return
	}

	if err := s.publisher.Publish(ev.EventType(), message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		// Notification delivery is best-effort; the post is already saved.
		s.logger.Warn("ForumService", "Failed to publish post-created event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
