package entity

import "time"

// SessionUser is the role-appropriate user projection stored on a session.
// Therapists carry their full record; guardians carry name, phone, role and
// the patient id they are linked to.
type SessionUser struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Role           Role   `json:"role"`
	Specialization string `json:"specialization,omitempty"`
	Experience     int    `json:"experience,omitempty"`
	Email          string `json:"email,omitempty"`
	PatientID      string `json:"patientId,omitempty"`
}

// TherapistUser projects a therapist record onto a session user
func TherapistUser(t *Therapist) *SessionUser {
	return &SessionUser{
		ID:             t.ID,
		Name:           t.Name,
		Phone:          t.Phone,
		Role:           RoleTherapist,
		Specialization: t.Specialization,
		Experience:     t.Experience,
		Email:          t.Email,
	}
}

// GuardianUser projects a patient's guardian contact onto a session user
func GuardianUser(p *Patient) *SessionUser {
	return &SessionUser{
		Name:      p.GuardianName,
		Phone:     p.GuardianPhone,
		Role:      RoleGuardian,
		PatientID: p.ID,
	}
}

// SubjectID identifies the authenticated principal: the therapist id, or the
// linked patient id for guardians.
func (u *SessionUser) SubjectID() string {
	if u.Role == RoleGuardian {
		return u.PatientID
	}
	return u.ID
}

// AuthSession is the persisted authentication session of this client.
// The zero value is the logged-out shape.
type AuthSession struct {
	SessionID       string       `json:"sessionId,omitempty"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	Role            Role         `json:"role"`
	User            *SessionUser `json:"user"`
	Patient         *Patient     `json:"patient,omitempty"`
	IssuedAt        time.Time    `json:"issuedAt"`
}
