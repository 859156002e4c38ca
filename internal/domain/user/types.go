package user

type Role string

const (
	RoleGuest    Role = "guest"
	RoleHost     Role = "host"
	RoleAgent    Role = "agent"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAgent, RoleOperator, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports platform-side roles allowed to act on any property or booking.
func (r Role) IsStaff() bool {
	return r == RoleOperator || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
