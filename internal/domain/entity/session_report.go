package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompletionStatus records how a therapy session ended
type CompletionStatus string

const (
	CompletionCompleted   CompletionStatus = "completed"
	CompletionInterrupted CompletionStatus = "interrupted"
	CompletionIncomplete  CompletionStatus = "incomplete"
)

// ABAData holds the measured outcome of a session. PercentageIndependent is
// derived from the trial counts and must be recomputed whenever they change.
type ABAData struct {
	TargetBehavior        string          `json:"targetBehavior"`
	MeasurementType       MeasurementType `json:"measurementType"`
	Baseline              float64         `json:"baseline"`
	Achieved              float64         `json:"achieved"`
	Unit                  string          `json:"unit"`
	PromptsUsed           []string        `json:"promptsUsed"`
	IndependentTrials     int             `json:"independentTrials"`
	PromptedTrials        int             `json:"promptedTrials"`
	PercentageIndependent int             `json:"percentageIndependent"`
}

// Recompute refreshes PercentageIndependent from the trial counts
func (d *ABAData) Recompute() {
	d.PercentageIndependent = PercentageIndependent(d.IndependentTrials, d.PromptedTrials)
}

// PercentageIndependent returns round(100 * independent / (independent + prompted)),
// rounding halves up, and 0 when no trials were run.
func PercentageIndependent(independent, prompted int) int {
	total := independent + prompted
	if total <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(independent)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(0)
	return int(pct.IntPart())
}

// BehavioralObservations are the therapist's qualitative session notes
type BehavioralObservations struct {
	PositiveResponses    int    `json:"positiveResponses"`
	ChallengingBehaviors int    `json:"challengingBehaviors"`
	EmotionalState       string `json:"emotionalState"`
	EngagementLevel      string `json:"engagementLevel"`
}

// SessionReport is the append-only record of one therapy session
type SessionReport struct {
	ID                         string                 `json:"id"`
	PatientID                  string                 `json:"patientId"`
	TherapistID                string                 `json:"therapistId"`
	SceneID                    string                 `json:"sceneId"`
	Date                       time.Time              `json:"date"`
	Duration                   int                    `json:"duration"`
	CompletionStatus           CompletionStatus       `json:"completionStatus"`
	EnvironmentSettings        map[string]any         `json:"environmentSettings"`
	ABAData                    ABAData                `json:"abaData"`
	BehavioralObservations     BehavioralObservations `json:"behavioralObservations"`
	TherapistNotes             string                 `json:"therapistNotes"`
	NextSessionRecommendations string                 `json:"nextSessionRecommendations"`
}
