package dto

import "time"

type QuestionOptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

type OnboardingQuestionResponse struct {
	ID       string                   `json:"id"`
	Category string                   `json:"category"`
	Question string                   `json:"question"`
	Options  []QuestionOptionResponse `json:"options"`
}

type OnboardingQuestionListResponse struct {
	Questions []OnboardingQuestionResponse `json:"questions"`
	Total     int                          `json:"total"`
}

type SelectAnswerRequest struct {
	Value string `json:"value" validate:"required"`
}

type OnboardingResponseDTO struct {
	QuestionID    string `json:"question_id"`
	SelectedValue string `json:"selected_value"`
	Score         int    `json:"score"`
}

type OnboardingResultResponse struct {
	PatientID         string                  `json:"patient_id"`
	Responses         []OnboardingResponseDTO `json:"responses"`
	TotalScore        int                     `json:"total_score"`
	RecommendedScenes []string                `json:"recommended_scenes"`
	CompletedAt       time.Time               `json:"completed_at"`
}

type OnboardingProgressResponse struct {
	PatientID string                      `json:"patient_id"`
	Index     int                         `json:"index"`
	Total     int                         `json:"total"`
	Question  *OnboardingQuestionResponse `json:"question,omitempty"`
	Candidate string                      `json:"candidate,omitempty"`
	Responses []OnboardingResponseDTO     `json:"responses"`
	Completed bool                        `json:"completed"`
	Result    *OnboardingResultResponse   `json:"result,omitempty"`
}
