package questionbank

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/prompts"
)

type stubJSONClient struct {
	raw string
	err error
}

func (s stubJSONClient) CompleteJSON(ctx context.Context, prompt string, out interface{}) error {
	if s.err != nil {
		return s.err
	}
	raw := s.raw
	if raw == "" {
		raw = `{"questions": [
			{"text": "AI question one", "tags": ["technical"]},
			{"text": "AI question two", "tags": ["technical"]}
		]}`
	}
	return json.Unmarshal([]byte(raw), out)
}

func testPrompts(t *testing.T) *prompts.PromptManager {
	t.Helper()
	pm, err := prompts.NewPromptManager()
	require.NoError(t, err)
	return pm
}

func testRequest(count int) GenerateRequest {
	return GenerateRequest{
		JobRole:        "Backend Engineer",
		JobDescription: "Build services.",
		FocusAreas:     []string{"technical", "communication"},
		Difficulty:     models.DifficultyMedium,
		Count:          count,
	}
}

func TestGenerateUsesAIQuestions(t *testing.T) {
	b := NewBank(stubJSONClient{}, testPrompts(t), nil)

	questions := b.Generate(context.Background(), testRequest(2))

	require.Len(t, questions, 2)
	for _, q := range questions {
		assert.Equal(t, models.SourceAI, q.Source)
		assert.NotEmpty(t, q.ID)
		assert.Equal(t, models.DefaultSuggestedSeconds, q.SuggestedTimeSeconds)
	}
	assert.Equal(t, 0, questions[0].Position)
	assert.Equal(t, 1, questions[1].Position)
}

func TestGenerateTopsUpFromTemplates(t *testing.T) {
	b := NewBank(stubJSONClient{}, testPrompts(t), nil)

	questions := b.Generate(context.Background(), testRequest(6))

	require.Len(t, questions, 6)
	assert.Equal(t, models.SourceAI, questions[0].Source)
	assert.Equal(t, models.SourceAI, questions[1].Source)
	for _, q := range questions[2:] {
		assert.Equal(t, models.SourceTemplate, q.Source)
	}
}

func TestGenerateAllBackendsDown(t *testing.T) {
	b := NewBank(stubJSONClient{err: errors.New("boom")}, testPrompts(t), nil)

	questions := b.Generate(context.Background(), testRequest(5))

	require.Len(t, questions, 5)
	for _, q := range questions {
		assert.Equal(t, models.SourceTemplate, q.Source)
		assert.NotEmpty(t, q.Text)
	}
}

func TestGenerateWithoutClient(t *testing.T) {
	b := NewBank(nil, nil, nil)

	questions := b.Generate(context.Background(), testRequest(4))

	require.Len(t, questions, 4)
	for _, q := range questions {
		assert.Equal(t, models.SourceTemplate, q.Source)
	}
}

func TestGenerateExactCountBeyondLibrary(t *testing.T) {
	// 2 focus areas x 5 templates per difficulty = 10; 18 forces generic
	// fallbacks and then repetition.
	b := NewBank(stubJSONClient{err: errors.New("down")}, testPrompts(t), nil)

	questions := b.Generate(context.Background(), testRequest(18))

	require.Len(t, questions, 18)
	sources := map[string]int{}
	for i, q := range questions {
		assert.Equal(t, i, q.Position)
		assert.NotEmpty(t, q.Text)
		sources[q.Source]++
	}
	assert.Positive(t, sources[models.SourceTemplate])
	assert.Positive(t, sources[models.SourceFallback])
}

func TestGenerateConcurrent(t *testing.T) {
	// One Bank is shared by every HTTP request; sampling must stay safe
	// under the race detector when requests overlap.
	b := NewBank(nil, testPrompts(t), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			questions := b.Generate(context.Background(), testRequest(6))
			assert.Len(t, questions, 6)
		}()
	}
	wg.Wait()
}

func TestGenerateZeroCount(t *testing.T) {
	b := NewBank(nil, nil, nil)
	assert.Empty(t, b.Generate(context.Background(), testRequest(0)))
}
