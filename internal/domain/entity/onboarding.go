package entity

import "time"

// MaxRecommendedScenes caps the scene list stored on an OnboardingResult
const MaxRecommendedScenes = 5

// QuestionOption is one scored answer of an onboarding question
type QuestionOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

// OnboardingQuestion is a fixed catalog entry. RecommendedScenes maps an
// option value to the scene ids that answer points towards.
type OnboardingQuestion struct {
	ID                string              `json:"id"`
	Category          string              `json:"category"`
	Question          string              `json:"question"`
	Options           []QuestionOption    `json:"options"`
	RecommendedScenes map[string][]string `json:"recommendedScenes"`
}

// Option returns the option with the given value
func (q *OnboardingQuestion) Option(value string) (QuestionOption, bool) {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return QuestionOption{}, false
}

// OnboardingResponse is a finalized answer to one question
type OnboardingResponse struct {
	QuestionID    string `json:"questionId"`
	SelectedValue string `json:"selectedValue"`
	Score         int    `json:"score"`
}

// OnboardingResult is the persisted aggregate of a completed questionnaire.
// At most one result exists per patient.
type OnboardingResult struct {
	PatientID         string               `json:"patientId"`
	Responses         []OnboardingResponse `json:"responses"`
	TotalScore        int                  `json:"totalScore"`
	RecommendedScenes []string             `json:"recommendedScenes"`
	CompletedAt       time.Time            `json:"completedAt"`
}
