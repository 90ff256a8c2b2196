package dto

type SensoryProfileDTO struct {
	SoundSensitivity      string   `json:"sound_sensitivity" validate:"required,oneof=low medium high"`
	VisualSensitivity     string   `json:"visual_sensitivity" validate:"required,oneof=low medium high"`
	TactileSensitivity    string   `json:"tactile_sensitivity" validate:"required,oneof=low medium high"`
	PreferredEnvironments []string `json:"preferred_environments"`
}

// Request DTOs

// CreatePatientRequest enrolls a patient. AssignedTherapist defaults to the
// enrolling therapist.
type CreatePatientRequest struct {
	Name               string            `json:"name" validate:"required,min=2"`
	DateOfBirth        string            `json:"date_of_birth" validate:"required"` // Format: YYYY-MM-DD
	GuardianName       string            `json:"guardian_name" validate:"required"`
	GuardianPhone      string            `json:"guardian_phone" validate:"required,max=20"`
	GuardianEmail      string            `json:"guardian_email" validate:"omitempty,email"`
	Diagnosis          string            `json:"diagnosis" validate:"required"`
	SecondaryDiagnosis string            `json:"secondary_diagnosis" validate:"omitempty"`
	AssignedTherapist  string            `json:"assigned_therapist" validate:"omitempty"`
	EnrollmentDate     string            `json:"enrollment_date" validate:"omitempty"` // Format: YYYY-MM-DD
	TherapyGoals       []string          `json:"therapy_goals"`
	SensoryProfile     SensoryProfileDTO `json:"sensory_profile"`
}

// UpdatePatientRequest is a partial update; absent fields are left unchanged.
// Onboarding completion is not editable here.
type UpdatePatientRequest struct {
	Name               *string            `json:"name" validate:"omitempty,min=2"`
	DateOfBirth        *string            `json:"date_of_birth" validate:"omitempty"`
	GuardianName       *string            `json:"guardian_name" validate:"omitempty"`
	GuardianPhone      *string            `json:"guardian_phone" validate:"omitempty,max=20"`
	GuardianEmail      *string            `json:"guardian_email" validate:"omitempty,email"`
	Diagnosis          *string            `json:"diagnosis" validate:"omitempty"`
	SecondaryDiagnosis *string            `json:"secondary_diagnosis" validate:"omitempty"`
	AssignedTherapist  *string            `json:"assigned_therapist" validate:"omitempty"`
	TherapyGoals       []string           `json:"therapy_goals"`
	SensoryProfile     *SensoryProfileDTO `json:"sensory_profile" validate:"omitempty"`
}

// Response DTOs

type PatientResponse struct {
	ID                     string            `json:"id"`
	Name                   string            `json:"name"`
	DateOfBirth            string            `json:"date_of_birth"`
	Age                    int               `json:"age"`
	GuardianName           string            `json:"guardian_name"`
	GuardianPhone          string            `json:"guardian_phone"`
	GuardianEmail          string            `json:"guardian_email,omitempty"`
	Diagnosis              string            `json:"diagnosis"`
	SecondaryDiagnosis     string            `json:"secondary_diagnosis,omitempty"`
	AssignedTherapist      string            `json:"assigned_therapist"`
	EnrollmentDate         string            `json:"enrollment_date"`
	TherapyGoals           []string          `json:"therapy_goals"`
	SensoryProfile         SensoryProfileDTO `json:"sensory_profile"`
	HasCompletedOnboarding bool              `json:"has_completed_onboarding"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

// PatientProgressResponse summarises a patient's session history
type PatientProgressResponse struct {
	PatientID                    string                 `json:"patient_id"`
	TotalSessions                int                    `json:"total_sessions"`
	CompletedSessions            int                    `json:"completed_sessions"`
	AveragePercentageIndependent float64                `json:"average_percentage_independent"`
	LatestSession                *SessionReportResponse `json:"latest_session,omitempty"`
	HasCompletedOnboarding       bool                   `json:"has_completed_onboarding"`
	OnboardingScore              *int                   `json:"onboarding_score,omitempty"`
	RecommendedScenes            []string               `json:"recommended_scenes,omitempty"`
}
