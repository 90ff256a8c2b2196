package entity

import "time"

// DateLayout is the calendar date format used by patient records
const DateLayout = "2006-01-02"

// SensitivityLevel is an ordinal sensory sensitivity rating
type SensitivityLevel string

const (
	SensitivityLow    SensitivityLevel = "low"
	SensitivityMedium SensitivityLevel = "medium"
	SensitivityHigh   SensitivityLevel = "high"
)

// SensoryProfile is embedded in Patient and has no lifecycle of its own
type SensoryProfile struct {
	SoundSensitivity      SensitivityLevel `json:"soundSensitivity"`
	VisualSensitivity     SensitivityLevel `json:"visualSensitivity"`
	TactileSensitivity    SensitivityLevel `json:"tactileSensitivity"`
	PreferredEnvironments []string         `json:"preferredEnvironments"`
}

// Patient represents an enrolled child together with the guardian contact.
// The guardian has no account of their own; GuardianPhone is their credential.
type Patient struct {
	ID                     string         `json:"id"`
	Name                   string         `json:"name"`
	DateOfBirth            string         `json:"dateOfBirth"`
	Age                    int            `json:"age"`
	GuardianName           string         `json:"guardianName"`
	GuardianPhone          string         `json:"guardianPhone"`
	GuardianEmail          string         `json:"guardianEmail"`
	Diagnosis              string         `json:"diagnosis"`
	SecondaryDiagnosis     string         `json:"secondaryDiagnosis,omitempty"`
	AssignedTherapist      string         `json:"assignedTherapist"`
	EnrollmentDate         string         `json:"enrollmentDate"`
	TherapyGoals           []string       `json:"therapyGoals"`
	SensoryProfile         SensoryProfile `json:"sensoryProfile"`
	HasCompletedOnboarding bool           `json:"hasCompletedOnboarding"`
}

// PatientPatch holds the fields of a partial update. Nil fields are left
// untouched; set fields replace the stored value wholesale.
type PatientPatch struct {
	Name                   *string
	DateOfBirth            *string
	Age                    *int
	GuardianName           *string
	GuardianPhone          *string
	GuardianEmail          *string
	Diagnosis              *string
	SecondaryDiagnosis     *string
	AssignedTherapist      *string
	EnrollmentDate         *string
	TherapyGoals           []string
	SensoryProfile         *SensoryProfile
	HasCompletedOnboarding *bool
}

// Apply shallow-merges the patch into p
func (p *Patient) Apply(patch PatientPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.DateOfBirth != nil {
		p.DateOfBirth = *patch.DateOfBirth
	}
	if patch.Age != nil {
		p.Age = *patch.Age
	}
	if patch.GuardianName != nil {
		p.GuardianName = *patch.GuardianName
	}
	if patch.GuardianPhone != nil {
		p.GuardianPhone = *patch.GuardianPhone
	}
	if patch.GuardianEmail != nil {
		p.GuardianEmail = *patch.GuardianEmail
	}
	if patch.Diagnosis != nil {
		p.Diagnosis = *patch.Diagnosis
	}
	if patch.SecondaryDiagnosis != nil {
		p.SecondaryDiagnosis = *patch.SecondaryDiagnosis
	}
	if patch.AssignedTherapist != nil {
		p.AssignedTherapist = *patch.AssignedTherapist
	}
	if patch.EnrollmentDate != nil {
		p.EnrollmentDate = *patch.EnrollmentDate
	}
	if patch.TherapyGoals != nil {
		p.TherapyGoals = append([]string(nil), patch.TherapyGoals...)
	}
	if patch.SensoryProfile != nil {
		p.SensoryProfile = *patch.SensoryProfile
	}
	if patch.HasCompletedOnboarding != nil {
		p.HasCompletedOnboarding = *patch.HasCompletedOnboarding
	}
}

// AgeOn returns the age in whole years at the given instant
func AgeOn(dateOfBirth, now time.Time) int {
	age := now.Year() - dateOfBirth.Year()
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
