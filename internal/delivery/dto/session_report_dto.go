package dto

import "time"

type ABADataDTO struct {
	TargetBehavior        string   `json:"target_behavior" validate:"required"`
	MeasurementType       string   `json:"measurement_type" validate:"required,oneof=frequency duration latency task_analysis"`
	Baseline              float64  `json:"baseline" validate:"gte=0"`
	Achieved              float64  `json:"achieved" validate:"gte=0"`
	Unit                  string   `json:"unit" validate:"omitempty"`
	PromptsUsed           []string `json:"prompts_used"`
	IndependentTrials     int      `json:"independent_trials" validate:"gte=0"`
	PromptedTrials        int      `json:"prompted_trials" validate:"gte=0"`
	PercentageIndependent int      `json:"percentage_independent"`
}

type BehavioralObservationsDTO struct {
	PositiveResponses    int    `json:"positive_responses" validate:"gte=0"`
	ChallengingBehaviors int    `json:"challenging_behaviors" validate:"gte=0"`
	EmotionalState       string `json:"emotional_state" validate:"omitempty"`
	EngagementLevel      string `json:"engagement_level" validate:"omitempty"`
}

// Request DTOs

// CreateSessionReportRequest records a session. TherapistID is taken from
// the authenticated session, never from the body. PercentageIndependent in
// the body is ignored and recomputed.
type CreateSessionReportRequest struct {
	TherapistID                string                    `json:"-"`
	PatientID                  string                    `json:"patient_id" validate:"required"`
	SceneID                    string                    `json:"scene_id" validate:"required"`
	Date                       *time.Time                `json:"date"`
	Duration                   int                       `json:"duration" validate:"gte=0"`
	CompletionStatus           string                    `json:"completion_status" validate:"required,oneof=completed interrupted incomplete"`
	EnvironmentSettings        map[string]any            `json:"environment_settings"`
	ABAData                    ABADataDTO                `json:"aba_data"`
	BehavioralObservations     BehavioralObservationsDTO `json:"behavioral_observations"`
	TherapistNotes             string                    `json:"therapist_notes" validate:"omitempty,max=4000"`
	NextSessionRecommendations string                    `json:"next_session_recommendations" validate:"omitempty,max=4000"`
}

// Response DTOs

type SessionReportResponse struct {
	ID                         string                    `json:"id"`
	PatientID                  string                    `json:"patient_id"`
	TherapistID                string                    `json:"therapist_id"`
	SceneID                    string                    `json:"scene_id"`
	Date                       time.Time                 `json:"date"`
	Duration                   int                       `json:"duration"`
	CompletionStatus           string                    `json:"completion_status"`
	EnvironmentSettings        map[string]any            `json:"environment_settings"`
	ABAData                    ABADataDTO                `json:"aba_data"`
	BehavioralObservations     BehavioralObservationsDTO `json:"behavioral_observations"`
	TherapistNotes             string                    `json:"therapist_notes"`
	NextSessionRecommendations string                    `json:"next_session_recommendations"`
}

type SessionReportListResponse struct {
	Reports []SessionReportResponse `json:"reports"`
	Total   int                     `json:"total"`
}
