package entity

// Role is the person type of an account and decides which profile it owns.
type Role string

const (
	// RoleDonor marks an individual blood donor.
	RoleDonor Role = "DONOR"
	// RoleCompany marks a health institution.
	RoleCompany Role = "COMPANY"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleDonor, RoleCompany:
		return true
	default:
		return false
	}
}
