package entities

import "encoding/json"

// Recommendation is the analysis outcome of one quiz for one student.
type Recommendation struct {
	QuizID          int
	QuizTitle       string
	ModelLabel      string   // e.g. "HIGH_CONTENT_GAP", may be empty
	ModelConfidence *float64 // 0..1, nil when the service did not send it
	StressScore     *float64 // average stress score, nil when unknown
	Recommendations []string
}

// UnmarshalJSON accepts both the older and newer result shapes of the
// recommendations endpoint.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var raw struct {
		QuizID          *int     `json:"quiz_id"`
		QuizIDAlt       *int     `json:"quizId"`
		QuizTitle       string   `json:"quiz_title"`
		ModelLabel      string   `json:"model_label"`
		ModelConfidence *float64 `json:"model_confidence"`
		StressScore     *float64 `json:"stress_score"`
		AvgStressScore  *float64 `json:"avg_stress_score"`
		Recommendations []string `json:"recommendations"`
		Recommendation  string   `json:"recommendation"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Recommendation{
		QuizTitle:       raw.QuizTitle,
		ModelLabel:      raw.ModelLabel,
		ModelConfidence: raw.ModelConfidence,
		StressScore:     raw.StressScore,
		Recommendations: raw.Recommendations,
	}

	switch {
	case raw.QuizID != nil:
		r.QuizID = *raw.QuizID
	case raw.QuizIDAlt != nil:
		r.QuizID = *raw.QuizIDAlt
	}

	if r.StressScore == nil {
		r.StressScore = raw.AvgStressScore
	}

	if len(r.Recommendations) == 0 && raw.Recommendation != "" {
		r.Recommendations = []string{raw.Recommendation}
	}

	return nil
}

// AnalysisReport is returned by the analyze-quiz admin action.
type AnalysisReport struct {
	Message string           `json:"message"`
	Results []AnalysisResult `json:"results"`
}

// AnalysisResult is the outcome for one student of an analyzed quiz.
type AnalysisResult struct {
	UserID          string  `json:"user_id"`
	QuizID          int     `json:"quiz_id"`
	ModelLabel      string  `json:"model_label"`
	ModelConfidence float64 `json:"model_confidence"`
}

// LabelCounts counts results per model label.
func (r AnalysisReport) LabelCounts() map[string]int {
	counts := make(map[string]int, len(r.Results))
	for _, res := range r.Results {
		counts[res.ModelLabel]++
	}
	return counts
}
