package flow

import (
	"fmt"
	"strings"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/utils"
)

// Bounds keeping the decision prompt a predictable size.
const (
	jobDescriptionExcerptLen = 500
	answerPreviewLen         = 200
	resumeExcerptLen         = 1000
)

// BuildDecisionPrompt assembles the natural-language decision request for one
// turn. Side-effect free: the same state, config and budget always yield the
// same prompt.
func BuildDecisionPrompt(st SessionState, cfg *models.InterviewConfig, budget Budget) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert AI interviewer conducting a dynamic interview for a '%s' role.\n", cfg.JobRole)
	b.WriteString("Your goal is a thorough, adaptive interview that still finishes inside its time limit.\n\n")

	fmt.Fprintf(&b, "Job description: %s\n", utils.Truncate(cfg.JobDescription, jobDescriptionExcerptLen))
	fmt.Fprintf(&b, "Focus areas: %s\n\n", strings.Join(cfg.FocusAreas, ", "))

	if st.ResumeText != "" {
		fmt.Fprintf(&b, "Candidate resume summary:\n%s\n\n", utils.Truncate(st.ResumeText, resumeExcerptLen))
	}

	b.WriteString("Interview history so far:\n")
	for i, qa := range st.History {
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n", i+1, qa.Question, i+1, utils.Truncate(qa.Answer, answerPreviewLen))
	}
	b.WriteString("\n")

	lastQuestion := "N/A"
	if len(st.History) > 0 {
		lastQuestion = st.History[len(st.History)-1].Question
	}
	fmt.Fprintf(&b, "The candidate just answered question %d of the preset list:\n", st.PresetCursor+1)
	fmt.Fprintf(&b, "Question: %s\nCandidate's answer: %q\n\n", lastQuestion, st.LastAnswer)

	b.WriteString("Remaining preset questions (backup plan):\n")
	if st.PresetCursor+1 < len(cfg.Questions) {
		for _, q := range cfg.Questions[st.PresetCursor+1:] {
			fmt.Fprintf(&b, "- %s\n", q.Text)
		}
	} else {
		b.WriteString("None\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Time budget: %d seconds remain, urgency %s.\n", budget.RemainingSeconds, budget.Urgency)
	if budget.MaxFollowUpsPerPreset == 0 {
		b.WriteString("Time is nearly exhausted: do NOT propose follow-up or resume questions; move through the remaining presets or complete.\n")
	} else if !budget.HasTimeForFollowUp {
		b.WriteString("Time is tight: prefer preset questions unless a short follow-up is clearly worth it.\n")
	}
	b.WriteString("\n")

	b.WriteString("Decide the next step:\n")
	b.WriteString("- \"follow_up\": probe deeper on the last answer (vague answers, interesting claims, missing specifics).\n")
	if st.ResumeText != "" {
		b.WriteString("- \"resume\": connect the candidate's resume to the job requirements.\n")
	}
	b.WriteString("- \"preset\": move on to the next preset question when the current topic is fully explored.\n")
	b.WriteString("- \"complete\": end the interview, only when every preset question has been asked.\n\n")

	b.WriteString("Respond ONLY with a valid JSON object:\n")
	b.WriteString(`{"action": "follow_up" | "resume" | "preset" | "complete", "question_text": "...", "suggested_time_seconds": 90}` + "\n")
	b.WriteString("question_text and suggested_time_seconds are required for follow_up and resume.\n")

	return b.String()
}
