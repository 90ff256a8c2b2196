package dto

// Request DTOs

// TherapistLoginRequest carries the therapist id, phone and the simulated
// one-time code. Any 4-digit code is accepted.
type TherapistLoginRequest struct {
	TherapistID string `json:"therapist_id" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	OTP         string `json:"otp" validate:"required,len=4,numeric"`
}

type GuardianLoginRequest struct {
	PatientID string `json:"patient_id" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	OTP       string `json:"otp" validate:"required,len=4,numeric"`
}

// Response DTOs

type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	ExpiresIn   int64            `json:"expires_in"`
	Session     *SessionResponse `json:"session"`
}

type SessionUserResponse struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Role           string `json:"role"`
	Specialization string `json:"specialization,omitempty"`
	Experience     int    `json:"experience,omitempty"`
	Email          string `json:"email,omitempty"`
	PatientID      string `json:"patient_id,omitempty"`
}

// SessionResponse is the route-guard view of the session. Role is null
// while logged out.
type SessionResponse struct {
	State           string               `json:"state"`
	Loading         bool                 `json:"loading"`
	IsAuthenticated bool                 `json:"is_authenticated"`
	Role            *string              `json:"role"`
	User            *SessionUserResponse `json:"user,omitempty"`
	Patient         *PatientResponse     `json:"patient,omitempty"`
}

type TherapistResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Experience     int    `json:"experience"`
	Email          string `json:"email"`
}
