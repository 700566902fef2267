package questionbank

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/prompts"
	"github.com/aibuddy434-arch/SmartInterview/internal/utils"
)

const jobDescriptionExcerptLen = 500

// JSONClient is the slice of the reasoning router the bank needs.
type JSONClient interface {
	CompleteJSON(ctx context.Context, prompt string, out interface{}) error
}

// GenerateRequest describes the question set to produce.
type GenerateRequest struct {
	JobRole        string
	JobDescription string
	FocusAreas     []string
	Difficulty     string
	Count          int
}

// Bank generates preset question sets. AI generation is attempted first, the
// curated template library covers shortfalls and generic fallbacks guarantee
// the exact requested count. Every question carries its provenance in Source.
type Bank struct {
	client  JSONClient
	prompts *prompts.PromptManager
	logger  *zap.Logger

	// One Bank serves all requests; rand.Rand is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewBank(client JSONClient, pm *prompts.PromptManager, logger *zap.Logger) *Bank {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bank{
		client:  client,
		prompts: pm,
		logger:  logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate returns exactly req.Count questions with Position assigned in
// order. It never fails: degraded backends only degrade provenance.
func (b *Bank) Generate(ctx context.Context, req GenerateRequest) []models.PresetQuestion {
	if req.Count <= 0 {
		return nil
	}

	questions := b.generateAI(ctx, req)
	if len(questions) < req.Count {
		questions = append(questions, b.generateTemplates(req, req.Count-len(questions))...)
	}
	if len(questions) < req.Count {
		questions = append(questions, b.generateFallbacks(req, req.Count-len(questions))...)
	}

	questions = questions[:req.Count]
	for i := range questions {
		questions[i].ID = uuid.NewString()
		questions[i].Position = i
		if questions[i].SuggestedTimeSeconds == 0 {
			questions[i].SuggestedTimeSeconds = models.DefaultSuggestedSeconds
		}
	}
	return questions
}

type generatedQuestion struct {
	Text string   `json:"text"`
	Tags []string `json:"tags"`
}

func (b *Bank) generateAI(ctx context.Context, req GenerateRequest) []models.PresetQuestion {
	if b.client == nil || b.prompts == nil {
		return nil
	}

	prompt, err := b.prompts.BuildPrompt("questions", req.Difficulty, map[string]string{
		"JobRole":        req.JobRole,
		"JobDescription": utils.Truncate(req.JobDescription, jobDescriptionExcerptLen),
		"FocusAreas":     strings.Join(req.FocusAreas, ", "),
		"Count":          strconv.Itoa(req.Count),
	})
	if err != nil {
		b.logger.Warn("question prompt unavailable", zap.Error(err))
		return nil
	}

	var out struct {
		Questions []generatedQuestion `json:"questions"`
	}
	if err := b.client.CompleteJSON(ctx, prompt, &out); err != nil {
		b.logger.Warn("AI question generation failed, using templates",
			zap.String("job_role", req.JobRole),
			zap.Error(err))
		return nil
	}

	var questions []models.PresetQuestion
	for _, q := range out.Questions {
		text := strings.TrimSpace(q.Text)
		if text == "" {
			continue
		}
		tags := q.Tags
		if len(tags) == 0 {
			tags = req.FocusAreas
		}
		questions = append(questions, models.PresetQuestion{
			Text:   text,
			Tags:   tags,
			Source: models.SourceAI,
		})
		if len(questions) == req.Count {
			break
		}
	}
	return questions
}

func (b *Bank) generateTemplates(req GenerateRequest, needed int) []models.PresetQuestion {
	if len(req.FocusAreas) == 0 {
		return nil
	}
	perArea := needed/len(req.FocusAreas) + 1

	var questions []models.PresetQuestion
	for _, area := range req.FocusAreas {
		pool := templateQuestions[area][req.Difficulty]
		for _, text := range b.sample(pool, perArea) {
			questions = append(questions, models.PresetQuestion{
				Text:   text,
				Tags:   []string{area},
				Source: models.SourceTemplate,
			})
		}
	}
	if len(questions) > needed {
		questions = questions[:needed]
	}
	return questions
}

// generateFallbacks always produces the requested number, repeating with a
// counter suffix if the generic pool runs out.
func (b *Bank) generateFallbacks(req GenerateRequest, needed int) []models.PresetQuestion {
	questions := make([]models.PresetQuestion, 0, needed)
	selected := b.sample(fallbackQuestions, needed)
	for _, text := range selected {
		questions = append(questions, models.PresetQuestion{
			Text:   text,
			Tags:   req.FocusAreas,
			Source: models.SourceFallback,
		})
	}
	for i := len(questions); i < needed; i++ {
		text := fmt.Sprintf("%s (part %d)", fallbackQuestions[i%len(fallbackQuestions)], i/len(fallbackQuestions)+1)
		questions = append(questions, models.PresetQuestion{
			Text:   text,
			Tags:   req.FocusAreas,
			Source: models.SourceFallback,
		})
	}
	return questions
}

// sample picks up to n elements from pool without replacement.
func (b *Bank) sample(pool []string, n int) []string {
	if n >= len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}
	b.mu.Lock()
	perm := b.rng.Perm(len(pool))
	b.mu.Unlock()

	picked := make([]string, 0, n)
	for _, i := range perm[:n] {
		picked = append(picked, pool[i])
	}
	return picked
}
