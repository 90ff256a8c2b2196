package entity

// Therapist is a seeded clinician account. Read-only after seeding.
type Therapist struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Role           Role   `json:"role"`
	Specialization string `json:"specialization"`
	Experience     int    `json:"experience"`
	Email          string `json:"email"`
}

// UserDirectory is the users seed document: every therapist and patient
type UserDirectory struct {
	Therapists []Therapist `json:"therapists"`
	Patients   []Patient   `json:"patients"`
}
