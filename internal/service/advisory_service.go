package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"crop-advisor-be/internal/dto"
	"crop-advisor-be/internal/pkg/logger"
	"crop-advisor-be/internal/repository/memory"
	"crop-advisor-be/pkg/llm"
	"crop-advisor-be/pkg/ml"
	"crop-advisor-be/pkg/prompt"
	"crop-advisor-be/pkg/store"
)

// Fallback shown whenever the text-generation call fails for any reason.
const insightsFallback = "Unable to fetch agricultural insights."

// notConfiguredMessage is shown when no generation token is present; the
// recommendation itself still works.
const notConfiguredMessage = "AI chatbot not configured. Please add HUGGINGFACE_API_TOKEN."

// Every generation call is bounded; expiry is a normal failure path.
const generateTimeout = 30 * time.Second

var ErrNoActiveSession = errors.New("no active advisory session; get a crop recommendation first")

// IAdvisoryService owns the recommendation flow and the follow-up chat that
// hangs off it.
type IAdvisoryService interface {
	// Recommend classifies the measurements, opens a fresh advisory session
	// for the user and returns the crop with generated insights.
	Recommend(ctx context.Context, userID string, req *dto.RecommendRequest) (*dto.RecommendResponse, error)

	// SendChat answers a follow-up question inside the user's session.
	SendChat(ctx context.Context, userID string, req *dto.SendChatRequest) (*dto.SendChatResponse, error)

	// History returns the session conversation so far.
	History(userID string) (*dto.ChatHistoryResponse, error)

	// ClearSession drops the user's session (logout).
	ClearSession(userID string)
}

type advisoryService struct {
	recommender *ml.Recommender
	llmProvider llm.Provider
	llmReady    bool
	sessionRepo *memory.SessionRepository
	logger      logger.ILogger
}

func NewAdvisoryService(
	recommender *ml.Recommender,
	llmProvider llm.Provider,
	llmReady bool,
	sessionRepo *memory.SessionRepository,
	log logger.ILogger,
) IAdvisoryService {
	return &advisoryService{
		recommender: recommender,
		llmProvider: llmProvider,
		llmReady:    llmReady,
		sessionRepo: sessionRepo,
		logger:      log,
	}
}

func (s *advisoryService) Recommend(ctx context.Context, userID string, req *dto.RecommendRequest) (*dto.RecommendResponse, error) {
	if s.recommender == nil {
		return &dto.RecommendResponse{
			Found:   false,
			Message: "Failed to load ML models. Please check model files.",
		}, nil
	}

	features := req.Features()

	crop, found, err := s.recommender.Recommend(features)
	if err != nil {
		s.logger.Error("AdvisoryService", "Prediction failed", map[string]interface{}{
			"error": err.Error(),
		})
		return &dto.RecommendResponse{
			Found:   false,
			Message: "Error making prediction: " + err.Error(),
		}, nil
	}
	if !found {
		return &dto.RecommendResponse{
			Found:   false,
			Message: "No crop recommendation available for these conditions",
		}, nil
	}

	language := req.Language
	if language == "" {
		language = string(prompt.LanguageEnglish)
	}

	// A new recommendation starts a fresh conversation; the previous session
	// for this user is replaced.
	session := &store.AdvisorySession{
		ID:       uuid.NewString(),
		UserID:   userID,
		Crop:     crop,
		Features: features,
		Language: language,
		History:  []llm.Message{},
	}
	s.sessionRepo.Save(session)

	insights := s.generate(ctx, session, "")

	return &dto.RecommendResponse{
		Crop:      crop,
		Found:     true,
		Insights:  insights,
		SessionId: session.ID,
	}, nil
}

func (s *advisoryService) SendChat(ctx context.Context, userID string, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	session, ok := s.sessionRepo.Get(userID)
	if !ok {
		return nil, ErrNoActiveSession
	}

	reply := s.generate(ctx, session, req.Message)

	session.History = append(session.History,
		llm.Message{Role: store.RoleUser, Content: req.Message},
		llm.Message{Role: store.RoleAssistant, Content: reply},
	)
	s.sessionRepo.Save(session)

	return &dto.SendChatResponse{
		Crop:          session.Crop,
		Reply:         reply,
		HistoryLength: len(session.History),
	}, nil
}

func (s *advisoryService) History(userID string) (*dto.ChatHistoryResponse, error) {
	session, ok := s.sessionRepo.Get(userID)
	if !ok {
		return nil, ErrNoActiveSession
	}

	return &dto.ChatHistoryResponse{
		Crop:    session.Crop,
		History: session.History,
	}, nil
}

func (s *advisoryService) ClearSession(userID string) {
	s.sessionRepo.Delete(userID)
}

// generate builds the advisory prompt for the session and runs it through
// the provider. Every failure degrades to the fixed fallback message so the
// caller never sees an error from this path.
func (s *advisoryService) generate(ctx context.Context, session *store.AdvisorySession, followUp string) string {
	if !s.llmReady {
		return notConfiguredMessage
	}

	builder := prompt.NewAdvisoryBuilder(session.Crop, session.Features, prompt.Language(session.Language))
	if followUp != "" {
		builder.WithFollowUp(followUp)
	}

	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	text, err := s.llmProvider.Generate(genCtx, builder.Build())
	if err != nil {
		s.logger.Warn("AdvisoryService", "Insight generation failed", map[string]interface{}{
			"crop":  session.Crop,
			"error": err.Error(),
		})
		return insightsFallback
	}

	return text
}
