package entity

// Role is the authenticated role tag carried by sessions and tokens
type Role string

// Role constants
const (
	RoleTherapist Role = "therapist"
	RoleGuardian  Role = "guardian"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleTherapist || r == RoleGuardian
}
