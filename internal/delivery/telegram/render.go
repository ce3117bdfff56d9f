package telegram

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/aliskhannn/emoquiz-bot/internal/api"
	"github.com/aliskhannn/emoquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/emoquiz-bot/internal/service"
	"github.com/aliskhannn/emoquiz-bot/internal/session"
)

// formatQuestionCard renders the current state of a session (MarkdownV2 safe).
func formatQuestionCard(title string, snap session.Snapshot, cameraOn bool) string {
	var sb strings.Builder

	sb.WriteString(bold(title))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("%s Question %d of %d",
		buildProgressBar(snap.Index, snap.Total, 10), snap.Index+1, snap.Total)))
	sb.WriteString("\n\n")

	if snap.Question != nil {
		sb.WriteString(bold(snap.Question.Text))
		sb.WriteString("\n\n")
		for _, c := range snap.Question.Options {
			mark := "▫️"
			if c.Label == snap.Selected {
				mark = "✅"
			}
			sb.WriteString(md(fmt.Sprintf("%s %s. %s", mark, c.Label, c.Text)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	switch snap.State {
	case session.Submitting:
		sb.WriteString(italic(msgSubmitting))
	case session.Failed:
		sb.WriteString(md("❌ " + errorText(snap.LastError)))
		sb.WriteString("\n")
		sb.WriteString(italic("Press Retry to send the same answer again or pick another option."))
	default:
		if snap.Selected == "" {
			sb.WriteString(italic("Pick an answer."))
		} else {
			sb.WriteString(italic(fmt.Sprintf("Selected: %s. Press Submit when ready.", snap.Selected)))
		}
	}

	sb.WriteString("\n")
	if cameraOn {
		sb.WriteString(md("📷 camera on"))
	} else {
		sb.WriteString(md("🚫 camera off"))
	}

	return sb.String()
}

// errorText returns the user-facing text of a failed submission.
func errorText(err error) string {
	var se *api.ServerError
	switch {
	case err == nil:
		return msgSubmitFailed
	case errors.As(err, &se):
		return fmt.Sprintf("%s %s", msgSubmitFailed, se.Detail)
	case errors.Is(err, api.ErrTimeout):
		return msgServiceTimeout
	case errors.Is(err, api.ErrNetwork):
		return msgServiceUnreachable
	default:
		return msgSubmitFailed
	}
}

const (
	maxMessageRunes    = 4096 // Telegram message text limit
	maxReviewTextRunes = 300  // cap for one question or option text in the review
)

// formatCompletion renders the summary of a finished quiz (MarkdownV2 safe)
// as one or more messages, each within the Telegram text limit.
func formatCompletion(title string, c entities.Completion) []string {
	score, total := c.Score(), c.Total()

	percentage := 0.0
	if total > 0 {
		percentage = float64(score) / float64(total) * 100
	}

	emoji, message := "📚", "Keep practising!"
	switch {
	case percentage >= 90:
		emoji, message = "🌟", "Excellent result!"
	case percentage >= 70:
		emoji, message = "👍", "Good result!"
	case percentage >= 50:
		emoji, message = "💪", "Not bad, keep going!"
	}

	blocks := make([]string, 0, len(c.Questions)+2)

	var header strings.Builder
	header.WriteString(md(emoji + " "))
	header.WriteString(bold(truncateRunes(title, maxReviewTextRunes) + " complete!"))
	header.WriteString("\n\n")
	header.WriteString(md("Score: "))
	header.WriteString(bold(fmt.Sprintf("%d/%d (%.0f%%)", score, total, percentage)))
	header.WriteString("\n")
	header.WriteString(md(buildProgressBar(score, total, 10)))
	header.WriteString("\n")
	blocks = append(blocks, header.String())

	for i, q := range c.Questions {
		answer := ""
		if i < len(c.UserAnswers) {
			answer = c.UserAnswers[i]
		}
		blocks = append(blocks, md(reviewLine(i+1, q, answer)))
	}

	blocks = append(blocks, "\n"+md(message+" Your emotion analysis will appear in /recommendations."))
	return packMessages(blocks, maxMessageRunes)
}

// reviewLine renders one question of the completion review.
func reviewLine(n int, q entities.Question, answer string) string {
	correct, _ := q.Options.Text(q.CorrectAnswer)
	line := fmt.Sprintf("%d. %s\n   ✔ %s. %s", n,
		truncateRunes(q.Text, maxReviewTextRunes),
		truncateRunes(q.CorrectAnswer, maxReviewTextRunes),
		truncateRunes(correct, maxReviewTextRunes))

	switch {
	case answer == "":
		line += "\n   ▫️ not answered"
	case !q.IsCorrect(answer):
		chosen, _ := q.Options.Text(answer)
		line += fmt.Sprintf("\n   ✘ your answer: %s. %s",
			truncateRunes(answer, maxReviewTextRunes),
			truncateRunes(chosen, maxReviewTextRunes))
	}
	return line
}

// packMessages joins blocks with newlines into as few messages as possible
// without splitting a block or exceeding limit runes per message.
func packMessages(blocks []string, limit int) []string {
	var (
		parts []string
		sb    strings.Builder
		n     int
	)
	for _, b := range blocks {
		size := utf8.RuneCountInString(b)
		if n > 0 && n+1+size > limit {
			parts = append(parts, sb.String())
			sb.Reset()
			n = 0
		}
		if n > 0 {
			sb.WriteString("\n")
			n++
		}
		sb.WriteString(b)
		n += size
	}
	if n > 0 {
		parts = append(parts, sb.String())
	}
	return parts
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

// formatQuizList renders quizzes available in the service.
func formatQuizList(quizzes []entities.Quiz) string {
	var sb strings.Builder
	sb.WriteString(bold("📝 Quizzes"))
	sb.WriteString("\n\n")
	for _, q := range quizzes {
		sb.WriteString(md(fmt.Sprintf("#%d %s (%d questions)", q.ID, q.Title, quizSize(q))))
		sb.WriteString("\n")
	}
	return sb.String()
}

func quizSize(q entities.Quiz) int {
	if len(q.Questions) > 0 {
		return len(q.Questions)
	}
	return q.QuestionCount
}

// formatRecommendations renders the analysis results of a student.
func formatRecommendations(recs []entities.Recommendation) string {
	var sb strings.Builder
	sb.WriteString(bold("🧠 Your results"))

	for _, r := range recs {
		sb.WriteString("\n\n")

		name := r.QuizTitle
		if name == "" {
			name = fmt.Sprintf("Quiz #%d", r.QuizID)
		}
		sb.WriteString(bold(name))

		if r.ModelLabel != "" {
			label := r.ModelLabel
			if r.ModelConfidence != nil {
				label += fmt.Sprintf(" (%.0f%%)", *r.ModelConfidence*100)
			}
			sb.WriteString("\n")
			sb.WriteString(md("Profile: " + label))
		}
		if r.StressScore != nil {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("Stress score: %.2f", *r.StressScore)))
		}
		for _, text := range r.Recommendations {
			sb.WriteString("\n")
			sb.WriteString(md("• " + text))
		}
	}

	return sb.String()
}

// formatAnalysis renders an analysis report as a per-label summary.
func formatAnalysis(quizID int, report *entities.AnalysisReport) string {
	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("📊 Analysis of quiz #%d", quizID)))

	if report.Message != "" {
		sb.WriteString("\n\n")
		sb.WriteString(md(report.Message))
	}

	counts := report.LabelCounts()
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	if len(labels) > 0 {
		sb.WriteString("\n")
	}
	for _, label := range labels {
		name := label
		if name == "" {
			name = "unlabelled"
		}
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s: %d", name, counts[label])))
	}

	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Students analyzed: %d", len(report.Results))))
	return sb.String()
}

// formatQuestionProgress renders the state of a quiz being authored.
func formatQuestionProgress(quizID int, p service.QuestionProgress) string {
	switch {
	case p.Target == 0:
		return fmt.Sprintf("Question #%d added to quiz #%d.", p.QuestionID, quizID)
	case p.Done():
		return fmt.Sprintf("Question %d of %d added. Quiz #%d is complete.", p.Added, p.Target, quizID)
	default:
		return fmt.Sprintf("Question %d of %d added to quiz #%d. Send /addquestion %d for the next one.",
			p.Added, p.Target, quizID, quizID)
	}
}
