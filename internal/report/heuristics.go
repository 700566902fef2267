package report

import (
	"fmt"
	"strings"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
)

// Keyword pools used by the heuristic technical score.
var roleKeywords = map[string][]string{
	"software engineer": {"programming", "code", "algorithm", "data structure", "debugging", "testing"},
	"data scientist":    {"machine learning", "statistics", "python", "data analysis", "model"},
	"product manager":   {"strategy", "roadmap", "stakeholder", "metrics", "user experience", "agile"},
	"designer":          {"user experience", "ui", "ux", "prototype", "wireframe", "design system"},
}

// heuristicAssessment scores the interview from transcript statistics alone.
// Deterministic for a given set of responses.
func heuristicAssessment(cfg *models.InterviewConfig, responses []models.ResponseRecord) assessment {
	if len(responses) == 0 {
		return assessment{
			Breakdown:       map[string]float64{"communication": 0, "technical": 0, "confidence": 0, "completeness": 0},
			Summary:         "No responses were recorded during this interview.",
			Recommendations: []string{"The candidate did not answer any questions."},
		}
	}

	total := float64(len(responses))
	var answered, totalLen float64
	for _, rec := range responses {
		transcript := strings.TrimSpace(rec.Transcript)
		totalLen += float64(len(transcript))
		if transcript != "" && transcript != models.NoResponseTranscript && len(transcript) > 10 {
			answered++
		}
	}
	avgLen := totalLen / total
	answeredRatio := answered / total

	communication := clampScore(answeredRatio*100 + avgLen/50*10)
	confidence := clampScore(avgLen/100*50 + answeredRatio*50)
	completeness := clampScore(answeredRatio * 100)
	technical := technicalScore(cfg, responses)

	breakdown := map[string]float64{
		"communication": round1(communication),
		"technical":     round1(technical),
		"confidence":    round1(confidence),
		"completeness":  round1(completeness),
	}
	overall := round1((communication + technical + confidence + completeness) / 4)

	return assessment{
		OverallScore:    overall,
		Breakdown:       breakdown,
		Summary:         summaryFor(overall, cfg.JobRole),
		Recommendations: recommendationsFor(breakdown),
	}
}

func technicalScore(cfg *models.InterviewConfig, responses []models.ResponseRecord) float64 {
	keywords := append([]string{}, cfg.FocusAreas...)
	role := strings.ToLower(cfg.JobRole)
	for name, words := range roleKeywords {
		if strings.Contains(role, name) {
			keywords = append(keywords, words...)
		}
	}
	if len(keywords) == 0 {
		return 50
	}

	var hits int
	for _, rec := range responses {
		transcript := strings.ToLower(rec.Transcript)
		for _, kw := range keywords {
			if strings.Contains(transcript, kw) {
				hits++
			}
		}
	}
	return clampScore(float64(hits) / float64(len(responses)) * 25)
}

func summaryFor(overall float64, jobRole string) string {
	switch {
	case overall >= 80:
		return fmt.Sprintf("Candidate shows excellent potential for the %s role.", jobRole)
	case overall >= 60:
		return fmt.Sprintf("Candidate has potential but may need additional training for %s.", jobRole)
	case overall >= 40:
		return "Candidate may be suitable for a more junior position."
	default:
		return "Candidate's performance does not meet the requirements."
	}
}

func recommendationsFor(breakdown map[string]float64) []string {
	var recs []string
	if breakdown["communication"] < 70 {
		recs = append(recs, "Communication could be more clear and structured.")
	}
	if breakdown["technical"] < 70 {
		recs = append(recs, "Technical depth needs improvement; include specific examples and measurable outcomes.")
	}
	if breakdown["confidence"] < 70 {
		recs = append(recs, "Could project more confidence; longer, more detailed answers help.")
	}
	if breakdown["completeness"] < 70 {
		recs = append(recs, "Answer every question, even briefly, rather than leaving gaps.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Strong performance across all assessed areas.")
	}
	return recs
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func round1(s float64) float64 {
	return float64(int(s*10+0.5)) / 10
}
