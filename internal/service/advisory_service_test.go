package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"crop-advisor-be/internal/dto"
	"crop-advisor-be/internal/pkg/logger"
	"crop-advisor-be/internal/repository/memory"
	"crop-advisor-be/pkg/llm"
	"crop-advisor-be/pkg/ml"
)

type stubProvider struct {
	reply   string
	err     error
	prompts []string
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.reply, p.err
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.reply, p.err
}

type stubClassifier struct {
	label int64
	err   error
}

func (c *stubClassifier) Predict(row [ml.FeatureCount]float32) (int64, error) { return c.label, c.err }
func (c *stubClassifier) Close() error                                        { return nil }

func identityScalerParams() *ml.ScalerParams {
	var p ml.ScalerParams
	for i := 0; i < ml.FeatureCount; i++ {
		p.MinMax.Scale[i] = 1
		p.Standard.Scale[i] = 1
	}
	return &p
}

func newTestAdvisoryService(label int64, classifierErr error, provider llm.Provider, llmReady bool) IAdvisoryService {
	recommender := ml.NewRecommender(
		ml.NewPipeline(identityScalerParams()),
		&stubClassifier{label: label, err: classifierErr},
	)
	return NewAdvisoryService(recommender, provider, llmReady, memory.NewSessionRepository(), logger.NopLogger{})
}

func riceRequest() *dto.RecommendRequest {
	return &dto.RecommendRequest{
		Nitrogen:    90,
		Phosphorus:  42,
		Potassium:   43,
		Temperature: 20.8,
		Humidity:    82,
		Ph:          6.5,
		Rainfall:    202.9,
	}
}

func TestRecommendOpensSession(t *testing.T) {
	provider := &stubProvider{reply: "Rice thrives in standing water."}
	svc := newTestAdvisoryService(1, nil, provider, true)

	resp, err := svc.Recommend(context.Background(), "user-1", riceRequest())
	assert.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, "Rice", resp.Crop)
	assert.Equal(t, "Rice thrives in standing water.", resp.Insights)
	assert.NotEmpty(t, resp.SessionId)

	history, err := svc.History("user-1")
	assert.NoError(t, err)
	assert.Equal(t, "Rice", history.Crop)
	assert.Empty(t, history.History)
}

func TestRecommendWithoutLLMToken(t *testing.T) {
	svc := newTestAdvisoryService(1, nil, nil, false)

	resp, err := svc.Recommend(context.Background(), "user-1", riceRequest())
	assert.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, "AI chatbot not configured. Please add HUGGINGFACE_API_TOKEN.", resp.Insights)
}

func TestRecommendLLMFailureFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream 503")}
	svc := newTestAdvisoryService(1, nil, provider, true)

	resp, err := svc.Recommend(context.Background(), "user-1", riceRequest())
	assert.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, "Unable to fetch agricultural insights.", resp.Insights)
}

func TestRecommendUnknownLabel(t *testing.T) {
	svc := newTestAdvisoryService(99, nil, &stubProvider{}, true)

	resp, err := svc.Recommend(context.Background(), "user-1", riceRequest())
	assert.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Equal(t, "No crop recommendation available for these conditions", resp.Message)

	// A failed recommendation must not open a session.
	_, err = svc.History("user-1")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestRecommendClassifierFailure(t *testing.T) {
	svc := newTestAdvisoryService(0, errors.New("session closed"), &stubProvider{}, true)

	resp, err := svc.Recommend(context.Background(), "user-1", riceRequest())
	assert.NoError(t, err)
	assert.False(t, resp.Found)
	assert.True(t, strings.HasPrefix(resp.Message, "Error making prediction: "))
}

func TestRecommendWithoutModels(t *testing.T) {
	svc := NewAdvisoryService(nil, &stubProvider{}, true, memory.NewSessionRepository(), logger.NopLogger{})

	resp, err := svc.Recommend(context.Background(), "user-1", riceRequest())
	assert.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Equal(t, "Failed to load ML models. Please check model files.", resp.Message)
}

func TestSendChatAppendsHistory(t *testing.T) {
	provider := &stubProvider{reply: "Water twice a week."}
	svc := newTestAdvisoryService(1, nil, provider, true)

	_, err := svc.Recommend(context.Background(), "user-1", riceRequest())
	assert.NoError(t, err)

	reply, err := svc.SendChat(context.Background(), "user-1", &dto.SendChatRequest{Message: "How often should I water?"})
	assert.NoError(t, err)
	assert.Equal(t, "Rice", reply.Crop)
	assert.Equal(t, "Water twice a week.", reply.Reply)
	assert.Equal(t, 2, reply.HistoryLength)

	// The follow-up question rides on the full advisory prompt.
	last := provider.prompts[len(provider.prompts)-1]
	assert.Contains(t, last, "Rice cultivation")
	assert.True(t, strings.HasSuffix(last, "Latest User Query: How often should I water?"))

	history, err := svc.History("user-1")
	assert.NoError(t, err)
	if assert.Len(t, history.History, 2) {
		assert.Equal(t, "user", history.History[0].Role)
		assert.Equal(t, "How often should I water?", history.History[0].Content)
		assert.Equal(t, "assistant", history.History[1].Role)
		assert.Equal(t, "Water twice a week.", history.History[1].Content)
	}
}

func TestSendChatWithoutSession(t *testing.T) {
	svc := newTestAdvisoryService(1, nil, &stubProvider{}, true)

	_, err := svc.SendChat(context.Background(), "user-1", &dto.SendChatRequest{Message: "hello?"})
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestNewRecommendationResetsSession(t *testing.T) {
	provider := &stubProvider{reply: "ok"}
	svc := newTestAdvisoryService(1, nil, provider, true)

	first, err := svc.Recommend(context.Background(), "user-1", riceRequest())
	assert.NoError(t, err)

	_, err = svc.SendChat(context.Background(), "user-1", &dto.SendChatRequest{Message: "A question about the first crop."})
	assert.NoError(t, err)

	second, err := svc.Recommend(context.Background(), "user-1", riceRequest())
	assert.NoError(t, err)
	assert.NotEqual(t, first.SessionId, second.SessionId)

	history, err := svc.History("user-1")
	assert.NoError(t, err)
	assert.Empty(t, history.History)
}

func TestClearSession(t *testing.T) {
	svc := newTestAdvisoryService(1, nil, &stubProvider{reply: "ok"}, true)

	_, err := svc.Recommend(context.Background(), "user-1", riceRequest())
	assert.NoError(t, err)

	svc.ClearSession("user-1")

	_, err = svc.History("user-1")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}
