package model

// Role of an authenticated principal. Authentication itself happens
// upstream; the engine only sees the resolved identity.
type Role string

const (
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

type Principal struct {
	ID       int  `json:"id"`
	Role     Role `json:"role"`
	Approved bool `json:"approved"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsApprovedOrganizer reports whether the principal may act for a venue,
// pending the venue ownership check.
func (p Principal) IsApprovedOrganizer() bool {
	return p.Role == RoleOrganizer && p.Approved
}
